// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/types"
)

// StateDB 状态数据库, 交易内的写入保存在 txcache, Commit 时一次性批量写入后端
type StateDB struct {
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
	db      dbm.DB
}

// NewStateDB new
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{
		cache: make(map[string][]byte),
		intx:  false,
		db:    db,
	}
}

// Begin 开始交易
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = make(map[string][]byte)
}

// Rollback 丢弃交易内的所有写入
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 合并交易写入并落盘, 写入失败时丢弃本交易的写入, cache 保持不变
func (s *StateDB) Commit() error {
	if len(s.cache) == 0 && len(s.txcache) == 0 {
		s.resetTx()
		return nil
	}
	batch := s.db.NewBatch(true)
	for k, v := range s.cache {
		if _, ok := s.txcache[k]; ok {
			continue
		}
		batchSet(batch, k, v)
	}
	for k, v := range s.txcache {
		batchSet(batch, k, v)
	}
	if err := batch.Write(); err != nil {
		elog.Error("StateDB Commit", "keys", len(s.cache)+len(s.txcache), "err", err)
		s.resetTx()
		return err
	}
	s.cache = make(map[string][]byte)
	s.resetTx()
	return nil
}

func batchSet(batch dbm.Batch, key string, value []byte) {
	if value == nil {
		batch.Delete([]byte(key))
		return
	}
	batch.Set([]byte(key), value)
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get 依次读取 txcache, cache 和后端
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return nilAsNotFound(value)
		}
	}
	if value, ok := s.cache[skey]; ok {
		return nilAsNotFound(value)
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func nilAsNotFound(value []byte) ([]byte, error) {
	if value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set 交易内写入 txcache, 否则写入 cache 等待下一次 Commit
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		setmap(s.txcache, skey, value)
	} else {
		setmap(s.cache, skey, value)
	}
	return nil
}

func setmap(data map[string][]byte, key string, value []byte) {
	if value == nil {
		data[key] = nil
		return
	}
	data[key] = dbm.CopyBytes(value)
}

// GetSetKeys 当前交易写入的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// PrefixScan 已经落盘的数据按前缀读取
func (s *StateDB) PrefixScan(prefix []byte) ([][]byte, error) {
	return s.db.PrefixScan(prefix)
}
