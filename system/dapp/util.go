// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/types"
)

//KVCreator 创建KV的辅助工具, 同时收集 receipt 的日志
type KVCreator struct {
	kvs  []*types.KeyValue
	logs []*types.ReceiptLog
	kvdb db.KV
	err  error
}

//NewKVCreator 创建创建者
func NewKVCreator(kv db.KV) *KVCreator {
	return &KVCreator{kvdb: kv}
}

func (c *KVCreator) add(key, value []byte, set bool) *KVCreator {
	c.kvs = append(c.kvs, &types.KeyValue{Key: key, Value: value})
	if set && c.err == nil {
		c.err = c.kvdb.Set(key, value)
	}
	return c
}

//Add add and set to kvdb
func (c *KVCreator) Add(key, value []byte) *KVCreator {
	return c.add(key, value, true)
}

//AddEncode 编码后写入
func (c *KVCreator) AddEncode(key []byte, value interface{}) *KVCreator {
	return c.Add(key, types.Encode(value))
}

//AddKV only add KV
func (c *KVCreator) AddKV(key, value []byte) *KVCreator {
	return c.add(key, value, false)
}

//AddListNoPrefix 只记录, 用于已经写入 statedb 的 kv (比如账户转账)
func (c *KVCreator) AddListNoPrefix(list []*types.KeyValue) *KVCreator {
	c.kvs = append(c.kvs, list...)
	return c
}

//AddLog 增加日志
func (c *KVCreator) AddLog(ty int32, log interface{}) *KVCreator {
	c.logs = append(c.logs, &types.ReceiptLog{Ty: ty, Log: types.Encode(log)})
	return c
}

//AddReceipt 合并其他模块的 receipt
func (c *KVCreator) AddReceipt(receipt *types.Receipt) *KVCreator {
	if receipt == nil {
		return c
	}
	c.kvs = append(c.kvs, receipt.KV...)
	c.logs = append(c.logs, receipt.Logs...)
	return c
}

//KVList 读取所有的kv列表
func (c *KVCreator) KVList() []*types.KeyValue {
	return c.kvs
}

//Receipt 生成 receipt, 写入 statedb 失败时返回错误
func (c *KVCreator) Receipt() (*types.Receipt, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &types.Receipt{Ty: types.ExecOk, KV: c.kvs, Logs: c.logs}, nil
}
