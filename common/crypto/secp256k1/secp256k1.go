// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/33cn/slotmachine/common"
	"github.com/33cn/slotmachine/common/crypto"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

//Driver 驱动
type Driver struct{}

//const
const (
	Name = "secp256k1"
)

func init() {
	crypto.Register(Name, Driver{})
}

//GenKey 生成私钥
func (d Driver) GenKey() (crypto.PrivKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	var privKeyBytes [32]byte
	copy(privKeyBytes[:], priv.Serialize())
	return PrivKeySecp256k1(privKeyBytes), nil
}

//PrivKeyFromBytes 字节转为私钥
func (d Driver) PrivKeyFromBytes(b []byte) (privKey crypto.PrivKey, err error) {
	if len(b) != 32 {
		return nil, errors.New("invalid priv key byte")
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	var privKeyBytes [32]byte
	copy(privKeyBytes[:], priv.Serialize())
	return PrivKeySecp256k1(privKeyBytes), nil
}

//PubKeyFromBytes 字节转为公钥
func (d Driver) PubKeyFromBytes(b []byte) (pubKey crypto.PubKey, err error) {
	if len(b) != 33 {
		return nil, errors.New("invalid pub key byte")
	}
	if _, err := btcec.ParsePubKey(b); err != nil {
		return nil, err
	}
	var pubKeyBytes [33]byte
	copy(pubKeyBytes[:], b)
	return PubKeySecp256k1(pubKeyBytes), nil
}

//SignatureFromBytes 字节转为签名
func (d Driver) SignatureFromBytes(b []byte) (sig crypto.Signature, err error) {
	if len(b) == 0 {
		return nil, errors.New("empty signature")
	}
	return SignatureSecp256k1(common.CopyBytes(b)), nil
}

//PrivKeySecp256k1 PrivKey
type PrivKeySecp256k1 [32]byte

//Bytes 字节格式
func (privKey PrivKeySecp256k1) Bytes() []byte {
	s := make([]byte, 32)
	copy(s, privKey[:])
	return s
}

//Sign 签名, 先对消息做 sha256
func (privKey PrivKeySecp256k1) Sign(msg []byte) crypto.Signature {
	priv, _ := btcec.PrivKeyFromBytes(privKey[:])
	sig := ecdsa.Sign(priv, common.Sha256(msg))
	return SignatureSecp256k1(sig.Serialize())
}

//PubKey 私钥生成公钥
func (privKey PrivKeySecp256k1) PubKey() crypto.PubKey {
	_, pub := btcec.PrivKeyFromBytes(privKey[:])
	var pubSecp PubKeySecp256k1
	copy(pubSecp[:], pub.SerializeCompressed())
	return pubSecp
}

//Equals 私钥是否相等
func (privKey PrivKeySecp256k1) Equals(other crypto.PrivKey) bool {
	if otherSecp, ok := other.(PrivKeySecp256k1); ok {
		return bytes.Equal(privKey[:], otherSecp[:])
	}
	return false
}

func (privKey PrivKeySecp256k1) String() string {
	return "PrivKeySecp256k1{*****}"
}

//PubKeySecp256k1 Compressed pubkey (just the x-cord),
// prefixed with 0x02 or 0x03, depending on the y-cord.
type PubKeySecp256k1 [33]byte

//Bytes 字节格式
func (pubKey PubKeySecp256k1) Bytes() []byte {
	s := make([]byte, 33)
	copy(s, pubKey[:])
	return s
}

//VerifyBytes 验证字节
func (pubKey PubKeySecp256k1) VerifyBytes(msg []byte, sig crypto.Signature) bool {
	sigSecp, ok := sig.(SignatureSecp256k1)
	if !ok {
		return false
	}
	pub, err := btcec.ParsePubKey(pubKey[:])
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sigSecp[:])
	if err != nil {
		return false
	}
	return parsed.Verify(common.Sha256(msg), pub)
}

func (pubKey PubKeySecp256k1) String() string {
	return fmt.Sprintf("PubKeySecp256k1{%X}", pubKey[:])
}

//Equals 公钥相等
func (pubKey PubKeySecp256k1) Equals(other crypto.PubKey) bool {
	if otherSecp, ok := other.(PubKeySecp256k1); ok {
		return bytes.Equal(pubKey[:], otherSecp[:])
	}
	return false
}

//SignatureSecp256k1 DER encoded signature
type SignatureSecp256k1 []byte

//Bytes 字节格式
func (sig SignatureSecp256k1) Bytes() []byte {
	s := make([]byte, len(sig))
	copy(s, sig[:])
	return s
}

func (sig SignatureSecp256k1) String() string {
	fingerprint := make([]byte, len(sig[:]))
	copy(fingerprint, sig[:])
	return fmt.Sprintf("/%X.../", fingerprint)
}
