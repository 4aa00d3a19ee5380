// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/slotmachine/common/db"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
)

//Query_GetOperatorConfig 运营方配置
func (s *Slotmachine) Query_GetOperatorConfig(in *st.ReqOperator) (interface{}, error) {
	return getOperatorConfig(s.GetStateDB(), in.Operator)
}

//Query_GetRandomnessClient 随机数客户端
func (s *Slotmachine) Query_GetRandomnessClient(in *st.ReqOperator) (interface{}, error) {
	return getRandomnessClient(s.GetStateDB(), in.Operator)
}

//Query_GetCommitment 一次下注
func (s *Slotmachine) Query_GetCommitment(in *st.ReqCommitment) (interface{}, error) {
	return getCommitment(s.GetStateDB(), in.Player, in.Nonce)
}

//Query_ListCommitments 玩家的所有下注, 按 nonce 升序
func (s *Slotmachine) Query_ListCommitments(in *st.ReqCommitments) (interface{}, error) {
	lister, ok := s.GetStateDB().(dbm.Lister)
	if !ok {
		return nil, types.ErrQueryNotSupport
	}
	values, err := lister.PrefixScan(calcCommitmentPrefix(in.Player))
	if err != nil {
		return nil, err
	}
	reply := &st.ReplyCommitments{}
	for _, v := range values {
		var c st.Commitment
		if err := types.Decode(v, &c); err != nil {
			return nil, errors.Wrapf(types.ErrDecode, "commitment: %v", err)
		}
		reply.Commitments = append(reply.Commitments, &c)
	}
	return reply, nil
}

//Query_GetBalance coins 余额, 可以查询托管地址
func (s *Slotmachine) Query_GetBalance(in *types.ReqBalance) (interface{}, error) {
	return s.GetCoinsAccount().LoadAccount(in.Addr), nil
}
