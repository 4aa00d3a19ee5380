// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 数据库后端, 提供内存和 goleveldb 两种实现
package db

import (
	"errors"
	"fmt"
)

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// KVDB 基本的 key value 读写
type KVDB interface {
	Get(key []byte) (value []byte, err error)
	Set(key []byte, value []byte) (err error)
}

// KV 带有内存事务的状态数据库接口
type KV interface {
	KVDB
	Begin()
	Rollback()
	Commit() error
}

// DB 持久化后端
type DB interface {
	KVDB
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	// PrefixScan 按 key 的字典序返回前缀下的所有 value
	PrefixScan(prefix []byte) ([][]byte, error)
	Close()
}

// Lister 可以按前缀列出数据
type Lister interface {
	PrefixScan(prefix []byte) ([][]byte, error)
}

// Batch 批量写, Write 时一次性落盘
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

//-----------------------------------------------------------------------------

// 后端名称
const (
	LevelDBBackendStr   = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr = "goleveldb"
	MemDBBackendStr     = "memdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 根据 backend 名称创建数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return creator(name, dir, cache)
}
