// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动框架, 每个执行器嵌入 DriverBase 并通过 Exec_/Query_ 前缀的方法处理交易和查询
package dapp

import (
	"reflect"

	"github.com/33cn/slotmachine/account"
	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/common/log"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
)

var blog = log.New("module", "execs.base")

// ErrMethodReturnType Exec_/Query_ 方法返回值不符合约定
var ErrMethodReturnType = errors.New("ErrMethodReturnType")

// Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetCoinsAccount(*account.DB)
	GetCoinsAccount() *account.DB
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	//执行器的名称
	GetName() string
	SetName(string)
	SetEnv(height, blocktime int64)
	GetHeight() int64
	GetBlockTime() int64
	Allow(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	Query(funcName string, params []byte) (interface{}, error)
	//空的 action, 用于解码 payload
	GetPayloadValue() ExecutorAction
	//action 名称到类型的映射
	GetTypeMap() map[string]int32
	GetFuncMap() map[string]reflect.Method
}

// DriverBase 执行器公共部分
type DriverBase struct {
	statedb      dbm.KV
	coinsaccount *account.DB
	height       int64
	blocktime    int64
	name         string
	child        Driver
	childValue   reflect.Value
	funcmap      map[string]reflect.Method
	tymap        map[int32]string
}

// SetChild 设置具体执行器, 并缓存它的方法列表
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
	d.funcmap = ListMethod(e)
	d.tymap = make(map[int32]string)
	for name, ty := range e.GetTypeMap() {
		d.tymap[ty] = name
	}
}

// GetFuncMap 具体执行器的方法
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	return d.funcmap
}

// SetEnv 设置高度和区块时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// GetHeight 当前高度
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime 当前区块时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

// SetStateDB set state db
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
	if d.coinsaccount != nil {
		d.coinsaccount.SetDB(db)
	}
}

// GetStateDB get state db
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// SetCoinsAccount 设置账户, 并绑定到当前的 statedb
func (d *DriverBase) SetCoinsAccount(acc *account.DB) {
	d.coinsaccount = acc
	if d.statedb != nil {
		acc.SetDB(d.statedb)
	}
}

// GetCoinsAccount 默认为 coins 币种
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount()
		d.coinsaccount.SetDB(d.statedb)
	}
	return d.coinsaccount
}

// GetName 执行器名称, 没有设置时为驱动名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

// SetName set name
func (d *DriverBase) SetName(name string) {
	d.name = name
}

// Allow 默认行为: 名字相同
func (d *DriverBase) Allow(tx *types.Transaction, index int) error {
	if d.child.GetDriverName() == string(tx.Execer) {
		return nil
	}
	return types.ErrExecNameNotAllowed
}

// GetActionName 交易的 action 名称
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	name, _, err := d.decodePayloadValue(tx)
	if err != nil {
		return "unknown"
	}
	return name
}

func (d *DriverBase) decodePayloadValue(tx *types.Transaction) (string, reflect.Value, error) {
	action := d.child.GetPayloadValue()
	if action == nil {
		return "", nilValue, types.ErrActionNotSupport
	}
	if err := types.Decode(tx.Payload, action); err != nil {
		return "", nilValue, errors.Wrapf(types.ErrDecode, "payload: %v", err)
	}
	name, value := GetActionValue(action, d.tymap, ListMethod(action))
	if name == "" {
		return "", nilValue, types.ErrActionNotSupport
	}
	return name, value, nil
}

// Exec 按 action 名称调用 Exec_<name>(payload, tx, index)
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call exec error", "tx.exec", string(tx.Execer), "info", r)
			err = types.ErrActionNotSupport
			receipt = nil
		}
	}()
	name, value, err := d.decodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcname := "Exec_" + name
	if _, ok := d.funcmap[funcname]; !ok {
		return nil, types.ErrActionNotSupport
	}
	valueret := d.funcmap[funcname].Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	if !IsOK(valueret, 2) {
		return nil, ErrMethodReturnType
	}
	r1 := valueret[0].Interface()
	if r1 != nil {
		if r, ok := r1.(*types.Receipt); ok {
			receipt = r
		} else {
			return nil, ErrMethodReturnType
		}
	}
	r2 := valueret[1].Interface()
	err = nil
	if r2 != nil {
		if r, ok := r2.(error); ok {
			err = r
		} else {
			return nil, ErrMethodReturnType
		}
	}
	return receipt, err
}

// Query 调用 Query_<funcname>(params), params 按方法参数类型解码
func (d *DriverBase) Query(funcname string, params []byte) (msg interface{}, err error) {
	funcname = "Query_" + funcname
	method, ok := d.funcmap[funcname]
	if !ok {
		blog.Error(funcname+" funcname not find", "func", funcname)
		return nil, types.ErrQueryNotSupport
	}
	ty := method.Type
	if ty.NumIn() != 2 {
		blog.Error(funcname+" err num in param", "num", ty.NumIn())
		return nil, types.ErrQueryNotSupport
	}
	paramin := ty.In(1)
	if paramin.Kind() != reflect.Ptr {
		blog.Error(funcname + "  param is not pointer")
		return nil, types.ErrQueryNotSupport
	}
	p := reflect.New(paramin.Elem())
	if err := types.Decode(params, p.Interface()); err != nil {
		return nil, errors.Wrapf(types.ErrDecode, "%s params: %v", funcname, err)
	}
	return CallQueryFunc(d.childValue, method, p.Interface())
}
