// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"encoding/binary"

	"github.com/33cn/slotmachine/common"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
)

//DrawSides 抽奖值范围 [1, DrawSides]
const DrawSides = 100

//DrawInput 抽奖输入, 字段顺序固定, 修改顺序会改变所有结果
type DrawInput struct {
	Secret     uint64
	Salt       uint64
	Height     uint64
	BlockTime  int64
	CommitTime int64
	Player     []byte
	Bet        int64
	External   []byte
}

//Bytes secret, salt, height, blocktime, commit time, player, bet, external
func (in *DrawInput) Bytes() []byte {
	buf := make([]byte, 0, 8*6+len(in.Player)+len(in.External))
	buf = append(buf, st.Uint64LE(in.Secret)...)
	buf = append(buf, st.Uint64LE(in.Salt)...)
	buf = append(buf, st.Uint64LE(in.Height)...)
	buf = append(buf, st.Int64LE(in.BlockTime)...)
	buf = append(buf, st.Int64LE(in.CommitTime)...)
	buf = append(buf, in.Player...)
	buf = append(buf, st.Int64LE(in.Bet)...)
	buf = append(buf, in.External...)
	return buf
}

//DeriveDraw SHA-256 后取前 8 字节小端, 模 100 加 1
func DeriveDraw(in *DrawInput) uint64 {
	h := common.Sha256(in.Bytes())
	v := binary.LittleEndian.Uint64(h[:8])
	return v%DrawSides + 1
}
