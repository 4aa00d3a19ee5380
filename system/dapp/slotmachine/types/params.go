// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//默认参数
const (
	DefaultMinBet   int64 = types.Coin / 100 // 0.01
	DefaultMaxBet   int64 = types.Coin
	DefaultMinDelay int64 = 2
)

//Tier 抽奖值大于 Threshold 时命中
type Tier struct {
	Threshold  decimal.Decimal
	Multiplier uint64
	Label      string
}

//TierTable 按阈值从高到低排列, 最后一项必须是倍数为 0 的兜底项
type TierTable []Tier

//DefaultTiers 默认赔率表
func DefaultTiers() TierTable {
	return TierTable{
		{Threshold: decimal.RequireFromString("99.5"), Multiplier: 25, Label: "JACKPOT"},
		{Threshold: decimal.NewFromInt(98), Multiplier: 10, Label: "Big Win"},
		{Threshold: decimal.NewFromInt(95), Multiplier: 6, Label: "Great"},
		{Threshold: decimal.NewFromInt(90), Multiplier: 3, Label: "Nice"},
		{Threshold: decimal.NewFromInt(80), Multiplier: 2, Label: "Win"},
		{Threshold: decimal.NewFromInt(65), Multiplier: 1, Label: "Break Even"},
		{Threshold: decimal.Zero, Multiplier: 0, Label: "Try Again"},
	}
}

var one = decimal.NewFromInt(1)

//Validate 阈值严格递减, 兜底项阈值小于 1 且倍数为 0
func (t TierTable) Validate() error {
	if len(t) == 0 {
		return errors.Wrap(ErrInvalidTierTable, "empty")
	}
	for i, tier := range t {
		if tier.Label == "" {
			return errors.Wrapf(ErrInvalidTierTable, "tier %d has no label", i)
		}
		if i > 0 && !tier.Threshold.LessThan(t[i-1].Threshold) {
			return errors.Wrapf(ErrInvalidTierTable, "tier %d threshold %s not below %s", i, tier.Threshold, t[i-1].Threshold)
		}
	}
	last := t[len(t)-1]
	if last.Multiplier != 0 || !last.Threshold.LessThan(one) {
		return errors.Wrapf(ErrInvalidTierTable, "last tier %q is not a catch-all", last.Label)
	}
	return nil
}

//Params 执行器参数, 金额为最小单位
type Params struct {
	MinBet   int64
	MaxBet   int64
	MinDelay int64
	Tiers    TierTable
}

//DefaultParams 默认参数
func DefaultParams() *Params {
	return &Params{
		MinBet:   DefaultMinBet,
		MaxBet:   DefaultMaxBet,
		MinDelay: DefaultMinDelay,
		Tiers:    DefaultTiers(),
	}
}

//Validate 检查参数
func (p *Params) Validate() error {
	if p.MinBet <= 0 || p.MaxBet < p.MinBet || !types.CheckAmount(p.MaxBet) {
		return errors.Wrapf(types.ErrInvalidParam, "bet range [%d, %d]", p.MinBet, p.MaxBet)
	}
	if p.MinDelay < 0 {
		return errors.Wrapf(types.ErrInvalidParam, "minDelay %d", p.MinDelay)
	}
	return p.Tiers.Validate()
}

//Config 配置文件中的 [exec.sub.slotmachine], 金额单位为币
type Config struct {
	MinBet   string        `json:"minBet"`
	MaxBet   string        `json:"maxBet"`
	MinDelay *int64        `json:"minDelay"`
	Tiers    []*TierConfig `json:"tiers"`
}

//TierConfig 配置中的一项赔率
type TierConfig struct {
	Threshold  decimal.Decimal `json:"threshold"`
	Multiplier uint64          `json:"multiplier"`
	Label      string          `json:"label"`
}

//ParseParams 解析子配置, 未配置的项使用默认值
func ParseParams(sub []byte) (*Params, error) {
	var cfg Config
	types.MustDecodeSubConfig(sub, &cfg)
	p := DefaultParams()
	var err error
	if cfg.MinBet != "" {
		if p.MinBet, err = types.ParseCoins(cfg.MinBet); err != nil {
			return nil, err
		}
	}
	if cfg.MaxBet != "" {
		if p.MaxBet, err = types.ParseCoins(cfg.MaxBet); err != nil {
			return nil, err
		}
	}
	if cfg.MinDelay != nil {
		p.MinDelay = *cfg.MinDelay
	}
	if len(cfg.Tiers) > 0 {
		p.Tiers = make(TierTable, 0, len(cfg.Tiers))
		for _, t := range cfg.Tiers {
			p.Tiers = append(p.Tiers, Tier{Threshold: t.Threshold, Multiplier: t.Multiplier, Label: t.Label})
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
