// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"

	"github.com/33cn/slotmachine/types"
)

var (
	ErrBetTooLow                  = errors.New("ErrBetTooLow")
	ErrBetTooHigh                 = errors.New("ErrBetTooHigh")
	ErrAlreadyRevealed            = errors.New("ErrAlreadyRevealed")
	ErrInsufficientDelay          = errors.New("ErrInsufficientDelay")
	ErrInvalidReveal              = errors.New("ErrInvalidReveal")
	ErrInvalidPlayer              = errors.New("ErrInvalidPlayer")
	ErrRandomnessAlreadyRequested = errors.New("ErrRandomnessAlreadyRequested")
	ErrRandomnessNotRequested     = errors.New("ErrRandomnessNotRequested")
	ErrOverflow                   = errors.New("ErrOverflow")
	ErrAlreadyInitialized         = errors.New("ErrAlreadyInitialized")
	ErrConfigNotFound             = errors.New("ErrConfigNotFound")
	ErrCommitmentNotFound         = errors.New("ErrCommitmentNotFound")
	ErrCommitmentExists           = errors.New("ErrCommitmentExists")
	ErrRandomnessClientNotFound   = errors.New("ErrRandomnessClientNotFound")
	ErrExternalEntropyRequired    = errors.New("ErrExternalEntropyRequired")
	ErrInvalidHash                = errors.New("ErrInvalidHash")
	ErrInvalidTierTable           = errors.New("ErrInvalidTierTable")
	ErrNoPrivilege                = errors.New("ErrNoPrivilege")
	ErrInvalidTransition          = errors.New("ErrInvalidTransition")
)

//账户模块的错误, 在这里也可以直接使用
var (
	ErrInsufficientFunds = types.ErrInsufficientFunds
	ErrActionNotSupport  = types.ErrActionNotSupport
	ErrSign              = types.ErrSign
	ErrAmount            = types.ErrAmount
	ErrNotFound          = types.ErrNotFound
	ErrUnRegistedDriver  = types.ErrUnRegistedDriver
)
