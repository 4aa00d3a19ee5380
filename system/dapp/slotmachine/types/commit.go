// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/slotmachine/common"
	"github.com/33cn/slotmachine/common/address"
)

//HashLen 承诺哈希长度
const HashLen = common.HashLen

//Uint64LE 8 字节小端
func Uint64LE(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

//Int64LE 8 字节小端, 按补码
func Int64LE(v int64) []byte {
	return Uint64LE(uint64(v))
}

//PlayerIdentity 地址的 20 字节 HASH160
func PlayerIdentity(player string) ([]byte, error) {
	return address.Hash160(player)
}

//CalcCommitHash SHA-256(secret_le8 || salt_le8 || identity)
func CalcCommitHash(secret, salt uint64, identity []byte) [HashLen]byte {
	return common.Sha256Concat(Uint64LE(secret), Uint64LE(salt), identity)
}

//CommitHash 根据玩家地址计算承诺哈希, 玩家下注前在本地计算
func CommitHash(secret, salt uint64, player string) ([]byte, error) {
	id, err := PlayerIdentity(player)
	if err != nil {
		return nil, err
	}
	h := CalcCommitHash(secret, salt, id)
	return h[:], nil
}
