// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/slotmachine/common"
	"github.com/33cn/slotmachine/common/address"
	"github.com/33cn/slotmachine/common/crypto"
	// 注册默认签名驱动
	_ "github.com/33cn/slotmachine/common/crypto/secp256k1"
)

//Signature 交易签名
type Signature struct {
	Ty        int32  `cbor:"ty"`
	Pubkey    []byte `cbor:"pubkey"`
	Signature []byte `cbor:"signature"`
}

//Transaction 交易, Payload 为执行器 action 的 cbor 编码
type Transaction struct {
	Execer    []byte     `cbor:"execer"`
	Payload   []byte     `cbor:"payload"`
	Nonce     int64      `cbor:"nonce"`
	Signature *Signature `cbor:"signature"`
}

//GetSignature 签名
func (tx *Transaction) GetSignature() *Signature {
	if tx == nil {
		return nil
	}
	return tx.Signature
}

//HashSign 签名内容的哈希
func (tx *Transaction) HashSign() []byte {
	copytx := *tx
	copytx.Signature = nil
	data := Encode(&copytx)
	return common.Sha256(data)
}

//Hash 交易哈希
func (tx *Transaction) Hash() []byte {
	return tx.HashSign()
}

//Size 交易大小
func (tx *Transaction) Size() int {
	return Size(tx)
}

//Sign 交易签名
func (tx *Transaction) Sign(ty int32, priv crypto.PrivKey) {
	tx.Signature = nil
	data := Encode(tx)
	pub := priv.PubKey()
	sign := priv.Sign(data)
	tx.Signature = &Signature{
		Ty:        ty,
		Pubkey:    pub.Bytes(),
		Signature: sign.Bytes(),
	}
}

//CheckSign 校验签名
func (tx *Transaction) CheckSign() bool {
	sig := tx.GetSignature()
	if sig == nil {
		return false
	}
	copytx := *tx
	copytx.Signature = nil
	data := Encode(&copytx)
	return CheckSign(data, sig)
}

//CheckSign 通过签名类型找到驱动并验证
func CheckSign(data []byte, sig *Signature) bool {
	return crypto.Verify(GetSignName(sig.Ty), sig.Pubkey, sig.Signature, data) == nil
}

//From 交易发送方地址
func (tx *Transaction) From() string {
	sig := tx.GetSignature()
	if sig == nil {
		return ""
	}
	return address.PubKeyToAddress(sig.Pubkey).String()
}

//Check 基本检查: 大小和签名
func (tx *Transaction) Check() error {
	if len(tx.Execer) == 0 {
		return ErrExecNameNotAllowed
	}
	if tx.Size() > MaxTxSize {
		return ErrTxSize
	}
	if !tx.CheckSign() {
		return ErrSign
	}
	return nil
}

//CreateTx 构造未签名交易
func CreateTx(execer string, action interface{}, nonce int64) *Transaction {
	return &Transaction{
		Execer:  []byte(execer),
		Payload: Encode(action),
		Nonce:   nonce,
	}
}
