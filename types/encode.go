// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// core deterministic: 同样的记录总是得到同样的字节, 交易哈希和签名依赖这一点
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: 1 << 16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

//Encode 编码
func Encode(data interface{}) []byte {
	b, err := encMode.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

//Decode 解码
func Decode(data []byte, msg interface{}) error {
	return decMode.Unmarshal(data, msg)
}

//Size 消息大小
func Size(data interface{}) int {
	return len(Encode(data))
}
