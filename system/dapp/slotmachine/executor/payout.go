// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//SelectTier 从高到低, 第一个阈值小于 draw 的档位
func SelectTier(table st.TierTable, draw uint64) (st.Tier, error) {
	d := decimal.NewFromInt(int64(draw))
	for _, tier := range table {
		if tier.Threshold.LessThan(d) {
			return tier, nil
		}
	}
	return st.Tier{}, errors.Wrapf(st.ErrInvalidTierTable, "no tier for draw %d", draw)
}

//Settle bet * multiplier, 结果超出账本金额范围时返回 ErrOverflow
func Settle(bet int64, multiplier uint64) (int64, error) {
	if bet < 0 {
		return 0, types.ErrAmount
	}
	amount, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(uint64(bet)), uint256.NewInt(multiplier))
	if overflow || !amount.IsUint64() || amount.Uint64() >= uint64(types.MaxCoin) {
		return 0, errors.Wrapf(st.ErrOverflow, "bet %d multiplier %d", bet, multiplier)
	}
	return int64(amount.Uint64()), nil
}
