// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/slotmachine/account"
	"github.com/33cn/slotmachine/common/address"
	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/system/dapp"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
)

//Action 一个交易的执行环境
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	blocktime    int64
	height       int64
	params       *st.Params
	index        int
}

func newAction(s *Slotmachine, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: s.GetCoinsAccount(),
		db:           s.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From(),
		blocktime:    s.GetBlockTime(),
		height:       s.GetHeight(),
		params:       s.params,
		index:        index,
	}
}

func loadRecord(db dbm.KVDB, key []byte, v interface{}, notFound error) error {
	value, err := db.Get(key)
	if err == types.ErrNotFound || err == dbm.ErrNotFoundInDb {
		return notFound
	}
	if err != nil {
		return err
	}
	if err := types.Decode(value, v); err != nil {
		return errors.Wrapf(types.ErrDecode, "%s: %v", string(key), err)
	}
	return nil
}

func getOperatorConfig(db dbm.KVDB, operator string) (*st.OperatorConfig, error) {
	var cfg st.OperatorConfig
	if err := loadRecord(db, calcConfigKey(operator), &cfg, st.ErrConfigNotFound); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func getRandomnessClient(db dbm.KVDB, operator string) (*st.RandomnessClient, error) {
	var client st.RandomnessClient
	if err := loadRecord(db, calcRandomnessKey(operator), &client, st.ErrRandomnessClientNotFound); err != nil {
		return nil, err
	}
	return &client, nil
}

//Initialize 运营方配置只能创建一次, 托管地址由运营方地址派生
func (action *Action) Initialize(payload *st.SlotInitialize) (*types.Receipt, error) {
	operator := action.fromaddr
	if _, err := getOperatorConfig(action.db, operator); err == nil {
		return nil, st.ErrAlreadyInitialized
	} else if err != st.ErrConfigNotFound {
		return nil, err
	}
	escrow, bump, err := address.FindDerivedAddress([]byte(st.EscrowSeed), []byte(operator))
	if err != nil {
		slog.Error("Initialize", "addr", operator, "err", err)
		return nil, err
	}
	cfg := &st.OperatorConfig{Authority: operator, EscrowBump: bump, Escrow: escrow}
	kv := dapp.NewKVCreator(action.db)
	kv.AddEncode(calcConfigKey(operator), cfg)
	kv.AddLog(st.TyLogSlotInitialize, &st.ReceiptSlot{Operator: operator, Escrow: escrow})
	slog.Debug("Initialize", "addr", operator, "escrow", escrow, "bump", bump)
	return kv.Receipt()
}

//InitRandomnessClient 默认不要求外部随机数
func (action *Action) InitRandomnessClient(payload *st.SlotInitRandomnessClient) (*types.Receipt, error) {
	operator := action.fromaddr
	if _, err := getRandomnessClient(action.db, operator); err == nil {
		return nil, st.ErrAlreadyInitialized
	} else if err != st.ErrRandomnessClientNotFound {
		return nil, err
	}
	client := &st.RandomnessClient{Authority: operator}
	kv := dapp.NewKVCreator(action.db)
	kv.AddEncode(calcRandomnessKey(operator), client)
	kv.AddLog(st.TyLogSlotInitRandomnessClient, &st.ReceiptSlot{Operator: operator})
	return kv.Receipt()
}

//SetRandomnessClient 只有 authority 可以修改, 记录按交易发起方查找
func (action *Action) SetRandomnessClient(payload *st.SlotSetRandomnessClient) (*types.Receipt, error) {
	operator := action.fromaddr
	client, err := getRandomnessClient(action.db, operator)
	if err != nil {
		return nil, err
	}
	if client.Authority != operator {
		slog.Error("SetRandomnessClient", "addr", operator, "authority", client.Authority, "err", st.ErrNoPrivilege)
		return nil, st.ErrNoPrivilege
	}
	client.UseExternalEntropy = payload.UseExternalEntropy
	kv := dapp.NewKVCreator(action.db)
	kv.AddEncode(calcRandomnessKey(operator), client)
	kv.AddLog(st.TyLogSlotSetRandomnessClient, &st.ReceiptSlot{Operator: operator})
	return kv.Receipt()
}

//FundEscrow 运营方从自己的余额向托管地址转账
func (action *Action) FundEscrow(payload *st.SlotFundEscrow) (*types.Receipt, error) {
	operator := action.fromaddr
	cfg, err := getOperatorConfig(action.db, operator)
	if err != nil {
		return nil, err
	}
	receipt, err := action.coinsAccount.Transfer(operator, cfg.Escrow, payload.Amount)
	if err != nil {
		slog.Error("FundEscrow", "addr", operator, "amount", payload.Amount, "err", err)
		return nil, err
	}
	kv := dapp.NewKVCreator(action.db)
	kv.AddReceipt(receipt)
	kv.AddLog(st.TyLogSlotFundEscrow, &st.ReceiptSlot{Operator: operator, Escrow: cfg.Escrow, Amount: payload.Amount})
	return kv.Receipt()
}
