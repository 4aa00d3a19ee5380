// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin          int64 = 1e9
	MaxCoin       int64 = 1e18
	CoinPrecision int32 = 9
	MaxTxSize           = 100000 //100K
)

//默认的币种与执行器名称
const (
	DefaultCoinSymbol = "coins"
	DefaultTitle      = "local"
)

//ExecErr 执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

//log type
const (
	TyLogReserved = 0
	TyLogErr      = 1
	TyLogFee      = 2
	//TyLogTransfer coins
	TyLogTransfer = 3
	TyLogGenesis  = 4
	//TyLogGenesisTransfer 创世分配
	TyLogGenesisTransfer = 5
)

//签名类型
const (
	Invalid   = 0
	SECP256K1 = 1
)

//SignName 签名类型对应的签名驱动
var SignName = map[int32]string{
	SECP256K1: "secp256k1",
}

//GetSignName 获取签名类型
func GetSignName(ty int32) string {
	if name, ok := SignName[ty]; ok {
		return name
	}
	return "unknown"
}

//EmptyValue 数据库中的空值
var EmptyValue = []byte("FFFFFFFFemptyBVBiCj5jvE15pEiwro8TQRGnJSNsJF")
