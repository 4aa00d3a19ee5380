// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//slotmachine action ty
const (
	SlotActionInitialize = iota + 1
	SlotActionInitRandomnessClient
	SlotActionSetRandomnessClient
	SlotActionFundEscrow
	SlotActionCommit
	SlotActionRequestRandomness
	SlotActionReveal
	SlotActionConsumeRandomness
)

//slotmachine log ty
const (
	TyLogSlotInitialize = 1201 + iota
	TyLogSlotInitRandomnessClient
	TyLogSlotSetRandomnessClient
	TyLogSlotFundEscrow
	TyLogSlotCommit
	TyLogSlotRequestRandomness
	TyLogSlotSpin
)

const (
	//SlotX 执行器名称
	SlotX = "slotmachine"
	//EscrowSeed 托管地址的派生种子
	EscrowSeed = "treasury"
)

//查询方法名
const (
	FuncNameGetOperatorConfig   = "GetOperatorConfig"
	FuncNameGetRandomnessClient = "GetRandomnessClient"
	FuncNameGetCommitment       = "GetCommitment"
	FuncNameListCommitments     = "ListCommitments"
	FuncNameGetBalance          = "GetBalance"
)

var (
	//ExecerSlot 执行器名称
	ExecerSlot = []byte(SlotX)
)

//GetTypeMap action 名称到类型
func GetTypeMap() map[string]int32 {
	return map[string]int32{
		"Initialize":           SlotActionInitialize,
		"InitRandomnessClient": SlotActionInitRandomnessClient,
		"SetRandomnessClient":  SlotActionSetRandomnessClient,
		"FundEscrow":           SlotActionFundEscrow,
		"Commit":               SlotActionCommit,
		"RequestRandomness":    SlotActionRequestRandomness,
		"Reveal":               SlotActionReveal,
		"ConsumeRandomness":    SlotActionConsumeRandomness,
	}
}
