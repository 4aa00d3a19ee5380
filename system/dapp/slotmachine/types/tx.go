// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/rand"

	"github.com/33cn/slotmachine/types"
)

func createTx(action *SlotmachineAction) *types.Transaction {
	return types.CreateTx(SlotX, action, rand.Int63())
}

//CreateInitializeTx 创建运营方配置
func CreateInitializeTx() *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:         SlotActionInitialize,
		Initialize: &SlotInitialize{},
	})
}

//CreateInitRandomnessClientTx 创建随机数客户端
func CreateInitRandomnessClientTx() *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:                   SlotActionInitRandomnessClient,
		InitRandomnessClient: &SlotInitRandomnessClient{},
	})
}

//CreateSetRandomnessClientTx 切换外部随机数
func CreateSetRandomnessClientTx(useExternal bool) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:                  SlotActionSetRandomnessClient,
		SetRandomnessClient: &SlotSetRandomnessClient{UseExternalEntropy: useExternal},
	})
}

//CreateFundEscrowTx 向托管地址注资
func CreateFundEscrowTx(amount int64) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:         SlotActionFundEscrow,
		FundEscrow: &SlotFundEscrow{Amount: amount},
	})
}

//CreateCommitTx 下注
func CreateCommitTx(operator string, hash []byte, bet int64, nonce uint64) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:     SlotActionCommit,
		Commit: &SlotCommit{Operator: operator, Hash: hash, Bet: bet, Nonce: nonce},
	})
}

//CreateRequestRandomnessTx 请求外部随机数
func CreateRequestRandomnessTx(player string, nonce uint64) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:                SlotActionRequestRandomness,
		RequestRandomness: &SlotRequestRandomness{Player: player, Nonce: nonce},
	})
}

//CreateRevealTx 本地熵开奖
func CreateRevealTx(player string, nonce, secret, salt uint64) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty:     SlotActionReveal,
		Reveal: &SlotReveal{Player: player, Nonce: nonce, Secret: secret, Salt: salt},
	})
}

//CreateConsumeRandomnessTx 外部随机数开奖
func CreateConsumeRandomnessTx(player string, nonce, secret, salt uint64, external []byte) *types.Transaction {
	return createTx(&SlotmachineAction{
		Ty: SlotActionConsumeRandomness,
		ConsumeRandomness: &SlotConsumeRandomness{
			Player:          player,
			Nonce:           nonce,
			Secret:          secret,
			Salt:            salt,
			ExternalEntropy: external,
		},
	})
}
