// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现账户余额的读写与转账
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. Transfer
//5. Genesis

import (
	"fmt"
	"strings"

	"github.com/33cn/slotmachine/common/address"
	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/common/log"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// ErrSymbolNameNotAllow symbol 中不允许有 "-"
var ErrSymbolNameNotAllow = errors.New("ErrSymbolNameNotAllow")

// DB for account
type DB struct {
	db               dbm.KVDB
	accountKeyPerfix []byte
	symbol           string
}

// NewCoinsAccount 默认币种的账户, 使用前需要 SetDB
func NewCoinsAccount() *DB {
	return newAccountDB(SymbolPrefix("coins", types.DefaultCoinSymbol))
}

// NewAccountDB 指定币种的账户
func NewAccountDB(symbol string, db dbm.KVDB) (*DB, error) {
	if symbol == "" || strings.ContainsRune(symbol, '-') {
		return nil, ErrSymbolNameNotAllow
	}
	accDB := newAccountDB(SymbolPrefix("coins", symbol))
	accDB.symbol = symbol
	accDB.SetDB(db)
	return accDB, nil
}

func newAccountDB(prefix string) *DB {
	acc := &DB{}
	acc.accountKeyPerfix = []byte(prefix)
	acc.symbol = types.DefaultCoinSymbol
	return acc
}

// SetDB set db
func (acc *DB) SetDB(db dbm.KVDB) *DB {
	acc.db = db
	return acc
}

// Symbol 币种
func (acc *DB) Symbol() string {
	return acc.symbol
}

// LoadAccount 读取账户, 不存在时返回零余额账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// CheckTransfer 检查是否可以转账
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	b := accFrom.GetBalance() - amount
	if b < 0 {
		return errors.Wrapf(types.ErrInsufficientFunds, "addr %s balance %d need %d", from, accFrom.GetBalance(), amount)
	}
	return nil
}

// Transfer 转账, 余额不足时返回 ErrInsufficientFunds 并且不写入任何数据
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	if accFrom.Addr == accTo.Addr {
		return nil, types.ErrSendSameToRecv
	}
	if accFrom.GetBalance()-amount < 0 {
		alog.Error("Transfer", "from", from, "balance", accFrom.GetBalance(), "amount", amount)
		return nil, errors.Wrapf(types.ErrInsufficientFunds, "addr %s balance %d need %d", from, accFrom.GetBalance(), amount)
	}
	if accTo.GetBalance() > types.MaxCoin-amount {
		return nil, errors.Wrapf(types.ErrAmount, "addr %s balance overflow", to)
	}
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance = accFrom.GetBalance() - amount
	accTo.Balance = accTo.GetBalance() + amount

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

// GenesisInit 创世分配, 直接增加余额
func (acc *DB) GenesisInit(addr string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	if err := address.CheckAddress(addr); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "genesis %s: %v", addr, err)
	}
	acc1 := acc.LoadAccount(addr)
	if acc1.GetBalance() > types.MaxCoin-amount {
		return nil, types.ErrAmount
	}
	copyacc := *acc1
	acc1.Balance += amount
	receiptBalance := &types.ReceiptAccountTransfer{
		Prev:    &copyacc,
		Current: acc1,
	}
	acc.SaveAccount(acc1)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogGenesisTransfer,
		Log: types.Encode(receiptBalance),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: append([]*types.ReceiptLog{}, log1, log2),
	}
}

// SaveAccount 保存账户
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

// GetKVSet 账户对应的写入
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// LoadAccountsDB 批量读取
func (acc *DB) LoadAccountsDB(addrs []string) (accs []*types.Account, err error) {
	for i := 0; i < len(addrs); i++ {
		acc1 := acc.LoadAccount(addrs[i])
		accs = append(accs, acc1)
	}
	return accs, nil
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

// SymbolPrefix mavl-<execer>-<symbol>-
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-", execer, symbol)
}
