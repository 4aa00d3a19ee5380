// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
)

var (
	configPrefix     = "mavl-" + st.SlotX + "-config-"
	randomnessPrefix = "mavl-" + st.SlotX + "-randomness-"
	commitmentPrefix = "mavl-" + st.SlotX + "-commitment-"
)

//calcConfigKey 运营方配置
func calcConfigKey(operator string) []byte {
	return []byte(configPrefix + operator)
}

//calcRandomnessKey 随机数客户端
func calcRandomnessKey(operator string) []byte {
	return []byte(randomnessPrefix + operator)
}

//calcCommitmentPrefix 玩家所有下注的前缀
func calcCommitmentPrefix(player string) []byte {
	return []byte(commitmentPrefix + player + "-")
}

//calcCommitmentKey nonce 补齐 20 位, 前缀扫描时按 nonce 排序
func calcCommitmentKey(player string, nonce uint64) []byte {
	return []byte(fmt.Sprintf("%s%s-%020d", commitmentPrefix, player, nonce))
}
