// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	ErrNotFound           = errors.New("ErrNotFound")
	ErrSign               = errors.New("ErrSign")
	ErrAmount             = errors.New("ErrAmount")
	ErrInsufficientFunds  = errors.New("ErrInsufficientFunds")
	ErrActionNotSupport   = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport    = errors.New("ErrQueryNotSupport")
	ErrUnRegistedDriver   = errors.New("ErrUnRegistedDriver")
	ErrInvalidAddress     = errors.New("ErrInvalidAddress")
	ErrInvalidParam       = errors.New("ErrInvalidParam")
	ErrDecode             = errors.New("ErrDecode")
	ErrTxSize             = errors.New("ErrTxSize")
	ErrEmpty              = errors.New("ErrEmpty")
	ErrSendSameToRecv     = errors.New("ErrSendSameToRecv")
	ErrGenesisAlloc       = errors.New("ErrGenesisAlloc")
	ErrExecNameNotAllowed = errors.New("ErrExecNameNotAllowed")
	ErrTxDup              = errors.New("ErrTxDup")
)
