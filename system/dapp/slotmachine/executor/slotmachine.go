// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 老虎机执行器: 承诺下注, 延迟开奖, 按赔率表从托管地址派奖
package executor

import (
	"github.com/33cn/slotmachine/system/dapp"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	log "github.com/inconshreveable/log15"
)

var slog = log.New("module", "execs.slotmachine")

//Init 注册执行器
func Init() {
	dapp.Register(st.SlotX, newSlotmachine, 0)
}

//Slotmachine 执行器
type Slotmachine struct {
	dapp.DriverBase
	params  *st.Params
	metrics *slotMetrics
}

func newSlotmachine() dapp.Driver {
	s := &Slotmachine{
		params:  st.DefaultParams(),
		metrics: newSlotMetrics(dapp.MetricsRegistry()),
	}
	s.SetChild(s)
	return s
}

//GetDriverName 驱动名称
func (s *Slotmachine) GetDriverName() string {
	return st.SlotX
}

//GetPayloadValue payload 类型
func (s *Slotmachine) GetPayloadValue() dapp.ExecutorAction {
	return &st.SlotmachineAction{}
}

//GetTypeMap action 类型
func (s *Slotmachine) GetTypeMap() map[string]int32 {
	return st.GetTypeMap()
}

//SetSubConfig 读取 [exec.sub.slotmachine]
func (s *Slotmachine) SetSubConfig(sub []byte) error {
	p, err := st.ParseParams(sub)
	if err != nil {
		return err
	}
	s.params = p
	slog.Info("slotmachine params", "minBet", p.MinBet, "maxBet", p.MaxBet, "minDelay", p.MinDelay, "tiers", len(p.Tiers))
	return nil
}

//Params 当前参数
func (s *Slotmachine) Params() *st.Params {
	return s.params
}

//ObserveReceipt 交易提交或者失败之后统计
func (s *Slotmachine) ObserveReceipt(receipt *types.Receipt, err error) {
	s.metrics.observe(receipt, err)
}

//Exec_Initialize 创建运营方配置
func (s *Slotmachine) Exec_Initialize(payload *st.SlotInitialize, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).Initialize(payload)
}

//Exec_InitRandomnessClient 创建随机数客户端
func (s *Slotmachine) Exec_InitRandomnessClient(payload *st.SlotInitRandomnessClient, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).InitRandomnessClient(payload)
}

//Exec_SetRandomnessClient 切换外部随机数
func (s *Slotmachine) Exec_SetRandomnessClient(payload *st.SlotSetRandomnessClient, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).SetRandomnessClient(payload)
}

//Exec_FundEscrow 注资
func (s *Slotmachine) Exec_FundEscrow(payload *st.SlotFundEscrow, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).FundEscrow(payload)
}

//Exec_Commit 下注
func (s *Slotmachine) Exec_Commit(payload *st.SlotCommit, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).Commit(payload)
}

//Exec_RequestRandomness 请求外部随机数
func (s *Slotmachine) Exec_RequestRandomness(payload *st.SlotRequestRandomness, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).RequestRandomness(payload)
}

//Exec_Reveal 本地熵开奖
func (s *Slotmachine) Exec_Reveal(payload *st.SlotReveal, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).Reveal(payload)
}

//Exec_ConsumeRandomness 外部随机数开奖
func (s *Slotmachine) Exec_ConsumeRandomness(payload *st.SlotConsumeRandomness, tx *types.Transaction, index int) (*types.Receipt, error) {
	return newAction(s, tx, index).ConsumeRandomness(payload)
}
