// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//Account 账户余额
type Account struct {
	Balance int64  `cbor:"balance"`
	Addr    string `cbor:"addr"`
}

//GetBalance 余额
func (acc *Account) GetBalance() int64 {
	if acc == nil {
		return 0
	}
	return acc.Balance
}

//KeyValue 状态数据库中的一条写入
type KeyValue struct {
	Key   []byte `cbor:"key"`
	Value []byte `cbor:"value"`
}

//ReceiptLog 执行日志
type ReceiptLog struct {
	Ty  int32  `cbor:"ty"`
	Log []byte `cbor:"log"`
}

//Receipt 交易执行结果
type Receipt struct {
	Ty   int32         `cbor:"ty"`
	KV   []*KeyValue   `cbor:"kv"`
	Logs []*ReceiptLog `cbor:"logs"`
}

//ReceiptAccountTransfer 账户余额变化前后
type ReceiptAccountTransfer struct {
	Prev    *Account `cbor:"prev"`
	Current *Account `cbor:"current"`
}

//ReqBalance 余额查询
type ReqBalance struct {
	Addr string `cbor:"addr"`
}

//MergeReceipt 合并两个receipt, receipt1 为空时返回 receipt2
func MergeReceipt(receipt1, receipt2 *Receipt) *Receipt {
	if receipt2 == nil {
		return receipt1
	}
	if receipt1 == nil {
		return receipt2
	}
	receipt1.KV = append(receipt1.KV, receipt2.KV...)
	receipt1.Logs = append(receipt1.Logs, receipt2.Logs...)
	return receipt1
}
