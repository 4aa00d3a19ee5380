// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 交易执行: 验签, 按执行器分发, 每个交易在 StateDB 的内存事务中执行, 成功才提交
package executor

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/33cn/slotmachine/account"
	dbm "github.com/33cn/slotmachine/common/db"
	clog "github.com/33cn/slotmachine/common/log"
	"github.com/33cn/slotmachine/system/dapp"
	slotmachine "github.com/33cn/slotmachine/system/dapp/slotmachine/executor"
	"github.com/33cn/slotmachine/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

var (
	heightKey    = []byte("executor-height")
	blocktimeKey = []byte("executor-blocktime")
	txKeyPrefix  = []byte("executor-tx-")
)

// SetLogLevel 设置控制台日志级别
func SetLogLevel(level string) {
	clog.SetLogLevel(level)
}

// DisableLog 关闭本模块日志
func DisableLog() {
	elog.SetHandler(log.DiscardHandler())
}

var runonce sync.Once

func execInit() {
	slotmachine.Init()
}

// SubConfigSetter 需要子配置的驱动实现
type SubConfigSetter interface {
	SetSubConfig(sub []byte) error
}

// ReceiptObserver 驱动在交易结果确定后得到通知, 成功时 receipt 已经落盘
type ReceiptObserver interface {
	ObserveReceipt(receipt *types.Receipt, err error)
}

// Executor 串行执行交易, 维护单调递增的高度和区块时间
type Executor struct {
	mu        sync.Mutex
	cfg       *types.Config
	db        dbm.DB
	ownDB     bool
	state     *StateDB
	coins     *account.DB
	drivers   map[string]dapp.Driver
	height    int64
	blocktime int64
	clock     func() time.Time
}

// Option 执行器选项
type Option func(*Executor)

// WithClock 替换时间源, 测试中使用
func WithClock(clock func() time.Time) Option {
	return func(e *Executor) {
		e.clock = clock
	}
}

// WithDB 使用已经打开的数据库, Close 时不会关闭
func WithDB(db dbm.DB) Option {
	return func(e *Executor) {
		e.db = db
	}
}

// New 根据配置创建执行器, 第一次启动时写入创世分配
func New(cfg *types.Config, sub *types.ConfigSubModule, opts ...Option) (*Executor, error) {
	runonce.Do(execInit)
	if cfg == nil {
		return nil, errors.Wrap(types.ErrInvalidParam, "nil config")
	}
	if cfg.Log != nil {
		clog.SetFileLog(cfg.Log)
	}
	e := &Executor{
		cfg:     cfg,
		drivers: make(map[string]dapp.Driver),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.db == nil {
		store := cfg.Store
		db, err := dbm.NewDB(store.Name, store.Driver, store.DbPath, int(store.DbCache))
		if err != nil {
			return nil, errors.Wrapf(err, "open store %s", store.Driver)
		}
		e.db = db
		e.ownDB = true
	}
	e.state = NewStateDB(e.db)
	coins, err := account.NewAccountDB(cfg.Exec.Symbol, e.state)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.coins = coins
	for _, name := range dapp.ListDrivers() {
		d, err := dapp.LoadDriver(name, -1)
		if err != nil {
			e.Close()
			return nil, err
		}
		if s, ok := d.(SubConfigSetter); ok {
			var data []byte
			if sub != nil {
				data = sub.Exec[name]
			}
			if err := s.SetSubConfig(data); err != nil {
				e.Close()
				return nil, errors.Wrapf(err, "config of %s", name)
			}
		}
		d.SetName(name)
		e.drivers[name] = d
		elog.Debug("load driver", "name", name, "addr", dapp.ExecAddress(name))
	}
	if err := e.loadEnv(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Executor) loadEnv() error {
	value, err := e.state.Get(heightKey)
	if err == types.ErrNotFound {
		return e.genesis()
	}
	if err != nil {
		return err
	}
	if err := types.Decode(value, &e.height); err != nil {
		return errors.Wrapf(types.ErrDecode, "height: %v", err)
	}
	value, err = e.state.Get(blocktimeKey)
	if err != nil {
		return err
	}
	if err := types.Decode(value, &e.blocktime); err != nil {
		return errors.Wrapf(types.ErrDecode, "blocktime: %v", err)
	}
	elog.Info("executor loaded", "height", e.height, "blocktime", e.blocktime)
	return nil
}

// genesis 在高度 0 写入创世分配
func (e *Executor) genesis() error {
	blocktime := e.clock().Unix()
	e.state.Begin()
	for _, g := range e.cfg.Genesis {
		amount, err := types.ParseCoins(g.Amount)
		if err != nil {
			e.state.Rollback()
			return errors.Wrapf(types.ErrGenesisAlloc, "%s: %v", g.Addr, err)
		}
		if _, err := e.coins.GenesisInit(g.Addr, amount); err != nil {
			e.state.Rollback()
			return errors.Wrapf(types.ErrGenesisAlloc, "%s: %v", g.Addr, err)
		}
		elog.Info("genesis", "addr", g.Addr, "amount", amount)
	}
	e.saveEnv(0, blocktime)
	if err := e.state.Commit(); err != nil {
		return err
	}
	e.height = 0
	e.blocktime = blocktime
	return nil
}

func (e *Executor) saveEnv(height, blocktime int64) {
	_ = e.state.Set(heightKey, types.Encode(height))
	_ = e.state.Set(blocktimeKey, types.Encode(blocktime))
}

// nextBlockTime 区块时间不会倒退
func (e *Executor) nextBlockTime() int64 {
	now := e.clock().Unix()
	if now < e.blocktime {
		return e.blocktime
	}
	return now
}

func txKey(hash []byte) []byte {
	return append(append([]byte{}, txKeyPrefix...), []byte(hex.EncodeToString(hash))...)
}

// Exec 执行一个交易, 失败时不留下任何状态变化
func (e *Executor) Exec(tx *types.Transaction) (*types.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := tx.Check(); err != nil {
		return nil, err
	}
	d, ok := e.drivers[string(tx.Execer)]
	if !ok {
		return nil, types.ErrUnRegistedDriver
	}
	hash := tx.Hash()
	if _, err := e.state.Get(txKey(hash)); err == nil {
		return nil, types.ErrTxDup
	}
	height := e.height + 1
	blocktime := e.nextBlockTime()

	receipt, err := e.execTx(d, tx, hash, height, blocktime)
	if observer, ok := d.(ReceiptObserver); ok {
		observer.ObserveReceipt(receipt, err)
	}
	if err != nil {
		return nil, err
	}
	e.height = height
	e.blocktime = blocktime
	elog.Debug("exec tx", "execer", string(tx.Execer), "height", height, "kvs", len(receipt.KV))
	return receipt, nil
}

func (e *Executor) execTx(d dapp.Driver, tx *types.Transaction, hash []byte, height, blocktime int64) (*types.Receipt, error) {
	e.state.Begin()
	d.SetStateDB(e.state)
	d.SetCoinsAccount(e.coins)
	d.SetEnv(height, blocktime)
	if err := d.Allow(tx, 0); err != nil {
		e.state.Rollback()
		return nil, err
	}
	receipt, err := d.Exec(tx, 0)
	if err != nil {
		e.state.Rollback()
		elog.Error("exec tx", "execer", string(tx.Execer), "from", tx.From(), "height", height, "err", err)
		return nil, err
	}
	_ = e.state.Set(txKey(hash), types.Encode(height))
	e.saveEnv(height, blocktime)
	if err := e.state.Commit(); err != nil {
		elog.Error("commit tx", "execer", string(tx.Execer), "height", height, "err", err)
		return nil, errors.Wrap(err, "commit")
	}
	return receipt, nil
}

// Query 只读查询, params 为查询参数结构体
func (e *Executor) Query(execer string, funcName string, params interface{}) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.drivers[execer]
	if !ok {
		return nil, types.ErrUnRegistedDriver
	}
	d.SetStateDB(e.state)
	d.SetCoinsAccount(e.coins)
	d.SetEnv(e.height, e.blocktime)
	return d.Query(funcName, types.Encode(params))
}

// GetBalance 账户余额
func (e *Executor) GetBalance(addr string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coins.LoadAccount(addr).GetBalance()
}

// Height 最后一个成功交易的高度
func (e *Executor) Height() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

// BlockTime 最后一个成功交易的区块时间
func (e *Executor) BlockTime() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blocktime
}

// Close 关闭自己打开的数据库
func (e *Executor) Close() {
	if e.ownDB && e.db != nil {
		e.db.Close()
	}
}
