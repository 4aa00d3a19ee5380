// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/33cn/slotmachine/common"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
)

var addrSeed = []byte("address seed bytes for public key")
var derivedSeed = []byte("derived address seed bytes")
var addressCache *lru.Cache
var checkAddressCache *lru.Cache

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

// ErrNoDerivedAddress no bump yields an off-curve key for the seeds
var ErrNoDerivedAddress = errors.New("ErrNoDerivedAddress")

// ErrDerivedOnCurve the derived key is a valid public key
var ErrDerivedOnCurve = errors.New("ErrDerivedOnCurve")

func init() {
	addressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

//ExecPubKey 计算公钥
func ExecPubKey(name string) []byte {
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	hash := common.Sha2Sum(buf)
	return hash[:]
}

//ExecAddress 计算量有点大，做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	addr := PubKeyToAddress(ExecPubKey(name))
	addrstr := addr.String()
	addressCache.Add(name, addrstr)
	return addrstr
}

// derivedKey returns 0x02 || SHA256(SHA256(seed || seeds... || bump)), the
// candidate compressed key for a derived address
func derivedKey(bump byte, seeds ...[]byte) []byte {
	buf := append([]byte{}, derivedSeed...)
	for _, s := range seeds {
		buf = append(buf, s...)
	}
	buf = append(buf, bump)
	hash := common.Sha2Sum(buf)
	key := make([]byte, 0, 33)
	key = append(key, 0x02)
	return append(key, hash[:]...)
}

func isOnCurve(key []byte) bool {
	_, err := btcec.ParsePubKey(key)
	return err == nil
}

// FindDerivedAddress searches bump from 255 down and returns the first
// derived address whose candidate key is not a point on secp256k1, so no
// private key can sign for it.
func FindDerivedAddress(seeds ...[]byte) (string, byte, error) {
	for bump := 255; bump >= 0; bump-- {
		key := derivedKey(byte(bump), seeds...)
		if isOnCurve(key) {
			continue
		}
		return PubKeyToAddress(key).String(), byte(bump), nil
	}
	return "", 0, ErrNoDerivedAddress
}

// CreateDerivedAddress recomputes a derived address from its seeds and bump
func CreateDerivedAddress(bump byte, seeds ...[]byte) (string, error) {
	key := derivedKey(bump, seeds...)
	if isOnCurve(key) {
		return "", ErrDerivedOnCurve
	}
	return PubKeyToAddress(key).String(), nil
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) *Address {
	a := new(Address)
	a.Pubkey = make([]byte, len(in))
	copy(a.Pubkey[:], in[:])
	a.Version = 0
	a.Hash160 = common.Rimp160AfterSha256(in)
	return a
}

//CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = NewAddrFromString(addr)
	checkAddressCache.Add(addr, e)
	return
}

// Hash160 returns the 20 byte payload of a base58check address
func Hash160(addr string) ([]byte, error) {
	a, err := NewAddrFromString(addr)
	if err != nil {
		return nil, err
	}
	return common.CopyBytes(a.Hash160[:]), nil
}

//NewAddrFromString new 地址
func NewAddrFromString(hs string) (a *Address, e error) {
	dec := base58.Decode(hs)
	if dec == nil {
		e = errors.New("Cannot decode b58 string '" + hs + "'")
		return
	}
	if len(dec) != 25 {
		e = errors.New("Address length error " + hex.EncodeToString(dec))
		return
	}
	sh := common.Sha2Sum(dec[0:21])
	if !bytes.Equal(sh[:4], dec[21:25]) {
		e = errors.New("Address Checksum error")
		return
	}
	a = new(Address)
	a.Version = dec[0]
	copy(a.Hash160[:], dec[1:21])
	a.Checksum = make([]byte, 4)
	copy(a.Checksum, dec[21:25])
	a.Enc58str = hs
	return
}

//Address 地址
type Address struct {
	Version  byte
	Hash160  [20]byte
	Checksum []byte
	Pubkey   []byte
	Enc58str string
}

func (a *Address) String() string {
	if a.Enc58str == "" {
		var ad [25]byte
		ad[0] = a.Version
		copy(ad[1:21], a.Hash160[:])
		if a.Checksum == nil {
			sh := common.Sha2Sum(ad[0:21])
			a.Checksum = make([]byte, 4)
			copy(a.Checksum, sh[:4])
		}
		copy(ad[21:25], a.Checksum[:])
		a.Enc58str = base58.Encode(ad[:])
	}
	return a.Enc58str
}
