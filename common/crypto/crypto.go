// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crypto 签名接口定义
package crypto

import (
	"sync"

	"github.com/pkg/errors"
)

// 驱动和验签错误
var (
	ErrUnknownDriver = errors.New("ErrUnknownDriver")
	ErrPubKey        = errors.New("ErrPubKey")
	ErrSignature     = errors.New("ErrSignature")
	ErrVerify        = errors.New("ErrVerify")
)

//PrivKey 私钥
type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) Signature
	PubKey() PubKey
	Equals(PrivKey) bool
}

//Signature 签名
type Signature interface {
	Bytes() []byte
	String() string
}

//PubKey 公钥
type PubKey interface {
	Bytes() []byte
	VerifyBytes(msg []byte, sig Signature) bool
	Equals(PubKey) bool
}

//Crypto 加密
type Crypto interface {
	GenKey() (PrivKey, error)
	SignatureFromBytes([]byte) (Signature, error)
	PrivKeyFromBytes([]byte) (PrivKey, error)
	PubKeyFromBytes([]byte) (PubKey, error)
}

var (
	drivers     = make(map[string]Crypto)
	driverMutex sync.Mutex
)

//Register 注册
func Register(name string, driver Crypto) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	if driver == nil {
		panic("crypto: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("crypto: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

//New 按名称取得驱动
func New(name string) (Crypto, error) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	c, ok := drivers[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", name)
	}
	return c, nil
}

//Verify 用名称为 name 的驱动验证 pub 对 msg 的签名 sig
func Verify(name string, pub, sig, msg []byte) error {
	c, err := New(name)
	if err != nil {
		return err
	}
	pubkey, err := c.PubKeyFromBytes(pub)
	if err != nil {
		return errors.Wrap(ErrPubKey, err.Error())
	}
	signature, err := c.SignatureFromBytes(sig)
	if err != nil {
		return errors.Wrap(ErrSignature, err.Error())
	}
	if !pubkey.VerifyBytes(msg, signature) {
		return ErrVerify
	}
	return nil
}
