// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/slotmachine/types"
)

//OperatorConfig 每个运营方一份, 记录托管地址的派生参数
type OperatorConfig struct {
	Authority  string `cbor:"authority"`
	EscrowBump uint8  `cbor:"escrowBump"`
	Escrow     string `cbor:"escrow"`
}

//RandomnessClient 运营方是否要求外部随机数
type RandomnessClient struct {
	Authority          string `cbor:"authority"`
	UseExternalEntropy bool   `cbor:"useExternalEntropy"`
}

//Commitment 一次下注, 由 (player, nonce) 唯一确定
type Commitment struct {
	Player              string `cbor:"player"`
	Operator            string `cbor:"operator"`
	Hash                []byte `cbor:"hash"`
	Bet                 int64  `cbor:"bet"`
	CreatedAt           int64  `cbor:"createdAt"`
	RandomnessRequested bool   `cbor:"randomnessRequested"`
	Status              Status `cbor:"status"`
	Nonce               uint64 `cbor:"nonce"`
	RevealedAt          int64  `cbor:"revealedAt,omitempty"`
	Draw                uint64 `cbor:"draw,omitempty"`
	Multiplier          uint64 `cbor:"multiplier,omitempty"`
	Payout              int64  `cbor:"payout,omitempty"`
	Label               string `cbor:"label,omitempty"`
}

//Revealed 是否已经开奖
func (c *Commitment) Revealed() bool {
	return c.Status == StatusRevealed
}

//SlotmachineAction 交易 payload, Ty 决定使用哪个字段
type SlotmachineAction struct {
	Ty                   int32                     `cbor:"ty"`
	Initialize           *SlotInitialize           `cbor:"initialize,omitempty"`
	InitRandomnessClient *SlotInitRandomnessClient `cbor:"initRandomnessClient,omitempty"`
	SetRandomnessClient  *SlotSetRandomnessClient  `cbor:"setRandomnessClient,omitempty"`
	FundEscrow           *SlotFundEscrow           `cbor:"fundEscrow,omitempty"`
	Commit               *SlotCommit               `cbor:"commit,omitempty"`
	RequestRandomness    *SlotRequestRandomness    `cbor:"requestRandomness,omitempty"`
	Reveal               *SlotReveal               `cbor:"reveal,omitempty"`
	ConsumeRandomness    *SlotConsumeRandomness    `cbor:"consumeRandomness,omitempty"`
}

//SlotInitialize 运营方为自己创建配置和托管地址
type SlotInitialize struct{}

//SlotInitRandomnessClient 运营方创建随机数客户端配置
type SlotInitRandomnessClient struct{}

//SlotSetRandomnessClient 运营方切换外部随机数
type SlotSetRandomnessClient struct {
	UseExternalEntropy bool `cbor:"useExternalEntropy"`
}

//SlotFundEscrow 运营方向托管地址注资
type SlotFundEscrow struct {
	Amount int64 `cbor:"amount"`
}

//SlotCommit 玩家下注
type SlotCommit struct {
	Operator string `cbor:"operator"`
	Hash     []byte `cbor:"hash"`
	Bet      int64  `cbor:"bet"`
	Nonce    uint64 `cbor:"nonce"`
}

//SlotRequestRandomness 请求外部随机数
type SlotRequestRandomness struct {
	Player string `cbor:"player"`
	Nonce  uint64 `cbor:"nonce"`
}

//SlotReveal 本地熵开奖
type SlotReveal struct {
	Player string `cbor:"player"`
	Nonce  uint64 `cbor:"nonce"`
	Secret uint64 `cbor:"secret"`
	Salt   uint64 `cbor:"salt"`
}

//SlotConsumeRandomness 使用外部随机数开奖
type SlotConsumeRandomness struct {
	Player          string `cbor:"player"`
	Nonce           uint64 `cbor:"nonce"`
	Secret          uint64 `cbor:"secret"`
	Salt            uint64 `cbor:"salt"`
	ExternalEntropy []byte `cbor:"externalEntropy,omitempty"`
}

//GetTy action 类型
func (a *SlotmachineAction) GetTy() int32 {
	if a == nil {
		return 0
	}
	return a.Ty
}

//GetInitialize get
func (a *SlotmachineAction) GetInitialize() *SlotInitialize {
	return a.Initialize
}

//GetInitRandomnessClient get
func (a *SlotmachineAction) GetInitRandomnessClient() *SlotInitRandomnessClient {
	return a.InitRandomnessClient
}

//GetSetRandomnessClient get
func (a *SlotmachineAction) GetSetRandomnessClient() *SlotSetRandomnessClient {
	return a.SetRandomnessClient
}

//GetFundEscrow get
func (a *SlotmachineAction) GetFundEscrow() *SlotFundEscrow {
	return a.FundEscrow
}

//GetCommit get
func (a *SlotmachineAction) GetCommit() *SlotCommit {
	return a.Commit
}

//GetRequestRandomness get
func (a *SlotmachineAction) GetRequestRandomness() *SlotRequestRandomness {
	return a.RequestRandomness
}

//GetReveal get
func (a *SlotmachineAction) GetReveal() *SlotReveal {
	return a.Reveal
}

//GetConsumeRandomness get
func (a *SlotmachineAction) GetConsumeRandomness() *SlotConsumeRandomness {
	return a.ConsumeRandomness
}

//ReceiptSlot 配置类操作和下注的日志
type ReceiptSlot struct {
	Operator  string `cbor:"operator"`
	Player    string `cbor:"player,omitempty"`
	Nonce     uint64 `cbor:"nonce,omitempty"`
	Escrow    string `cbor:"escrow,omitempty"`
	Amount    int64  `cbor:"amount,omitempty"`
	PrevState Status `cbor:"prevState,omitempty"`
	State     Status `cbor:"state,omitempty"`
}

//ReceiptSpin 开奖结果, 包含复算抽奖值所需的全部环境参数
type ReceiptSpin struct {
	Player     string `cbor:"player"`
	Operator   string `cbor:"operator"`
	Nonce      uint64 `cbor:"nonce"`
	Draw       uint64 `cbor:"draw"`
	Multiplier uint64 `cbor:"multiplier"`
	Payout     int64  `cbor:"payout"`
	Label      string `cbor:"label"`
	Height     int64  `cbor:"height"`
	BlockTime  int64  `cbor:"blockTime"`
	External   bool   `cbor:"external"`
}

//DecodeSpin 从交易回执中取出开奖结果
func DecodeSpin(receipt *types.Receipt) (*ReceiptSpin, error) {
	if receipt == nil {
		return nil, ErrNotFound
	}
	for _, l := range receipt.Logs {
		if l.Ty != TyLogSlotSpin {
			continue
		}
		var spin ReceiptSpin
		if err := types.Decode(l.Log, &spin); err != nil {
			return nil, err
		}
		return &spin, nil
	}
	return nil, ErrNotFound
}

//ReqOperator 按运营方查询
type ReqOperator struct {
	Operator string `cbor:"operator"`
}

//ReqCommitment 按 (player, nonce) 查询
type ReqCommitment struct {
	Player string `cbor:"player"`
	Nonce  uint64 `cbor:"nonce"`
}

//ReqCommitments 列出玩家的所有下注
type ReqCommitments struct {
	Player string `cbor:"player"`
}

//ReplyCommitments 按 nonce 升序
type ReplyCommitments struct {
	Commitments []*Commitment `cbor:"commitments"`
}
