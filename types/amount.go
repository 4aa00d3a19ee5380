// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var coinDecimal = decimal.New(1, CoinPrecision)

//ParseCoins 将 "0.01" 这样的币数转为最小单位, 不允许超出精度
func ParseCoins(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrAmount, "parse %q: %v", s, err)
	}
	return CoinsToAmount(d)
}

//CoinsToAmount decimal 币数转为最小单位
func CoinsToAmount(d decimal.Decimal) (int64, error) {
	units := d.Mul(coinDecimal)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrAmount, "%s has more than %d decimals", d, CoinPrecision)
	}
	if units.Sign() < 0 || units.GreaterThan(decimal.NewFromInt(MaxCoin)) {
		return 0, errors.Wrapf(ErrAmount, "%s out of range", d)
	}
	return units.IntPart(), nil
}

//FormatCoins 最小单位转为币数
func FormatCoins(amount int64) string {
	return decimal.New(amount, -CoinPrecision).String()
}

//CheckAmount 转账金额需要 0 < amount < MaxCoin
func CheckAmount(amount int64) bool {
	return amount > 0 && amount < MaxCoin
}
