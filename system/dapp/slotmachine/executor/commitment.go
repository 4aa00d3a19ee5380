// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	dbm "github.com/33cn/slotmachine/common/db"
	"github.com/33cn/slotmachine/system/dapp"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
)

func getCommitment(db dbm.KVDB, player string, nonce uint64) (*st.Commitment, error) {
	var c st.Commitment
	if err := loadRecord(db, calcCommitmentKey(player, nonce), &c, st.ErrCommitmentNotFound); err != nil {
		return nil, err
	}
	return &c, nil
}

func (action *Action) saveCommitment(c *st.Commitment) error {
	return action.db.Set(calcCommitmentKey(c.Player, c.Nonce), types.Encode(c))
}

func (action *Action) checkDelay(c *st.Commitment) error {
	if action.blocktime-c.CreatedAt < action.params.MinDelay {
		return errors.Wrapf(st.ErrInsufficientDelay, "created %d now %d min %d", c.CreatedAt, action.blocktime, action.params.MinDelay)
	}
	return nil
}

//Commit 记录承诺哈希, 下注金额转入运营方托管地址
func (action *Action) Commit(payload *st.SlotCommit) (*types.Receipt, error) {
	player := action.fromaddr
	if payload.Bet < action.params.MinBet {
		return nil, st.ErrBetTooLow
	}
	if payload.Bet > action.params.MaxBet {
		return nil, st.ErrBetTooHigh
	}
	if len(payload.Hash) != st.HashLen {
		return nil, st.ErrInvalidHash
	}
	cfg, err := getOperatorConfig(action.db, payload.Operator)
	if err != nil {
		return nil, err
	}
	// 开奖后的 nonce 也不能再用
	if _, err := getCommitment(action.db, player, payload.Nonce); err == nil {
		return nil, st.ErrCommitmentExists
	} else if err != st.ErrCommitmentNotFound {
		return nil, err
	}
	receipt, err := action.coinsAccount.Transfer(player, cfg.Escrow, payload.Bet)
	if err != nil {
		slog.Error("Commit", "addr", player, "nonce", payload.Nonce, "bet", payload.Bet, "err", err)
		return nil, err
	}
	c := &st.Commitment{
		Player:    player,
		Operator:  payload.Operator,
		Hash:      payload.Hash,
		Bet:       payload.Bet,
		CreatedAt: action.blocktime,
		Status:    st.StatusPending,
		Nonce:     payload.Nonce,
	}
	kv := dapp.NewKVCreator(action.db)
	kv.AddReceipt(receipt)
	kv.AddEncode(calcCommitmentKey(player, payload.Nonce), c)
	kv.AddLog(st.TyLogSlotCommit, &st.ReceiptSlot{
		Operator: payload.Operator,
		Player:   player,
		Nonce:    payload.Nonce,
		Escrow:   cfg.Escrow,
		Amount:   payload.Bet,
		State:    st.StatusPending,
	})
	return kv.Receipt()
}

//RequestRandomness 标记为等待外部随机数
func (action *Action) RequestRandomness(payload *st.SlotRequestRandomness) (*types.Receipt, error) {
	if action.fromaddr != payload.Player {
		return nil, st.ErrInvalidPlayer
	}
	c, err := getCommitment(action.db, payload.Player, payload.Nonce)
	if err != nil {
		return nil, err
	}
	next, err := c.Status.Next(st.EventRequestRandomness)
	if err != nil {
		return nil, err
	}
	if err := action.checkDelay(c); err != nil {
		return nil, err
	}
	prev := c.Status
	c.Status = next
	c.RandomnessRequested = true
	kv := dapp.NewKVCreator(action.db)
	kv.AddEncode(calcCommitmentKey(c.Player, c.Nonce), c)
	kv.AddLog(st.TyLogSlotRequestRandomness, &st.ReceiptSlot{
		Operator:  c.Operator,
		Player:    c.Player,
		Nonce:     c.Nonce,
		PrevState: prev,
		State:     next,
	})
	return kv.Receipt()
}

//Reveal 只使用链上环境作为熵
func (action *Action) Reveal(payload *st.SlotReveal) (*types.Receipt, error) {
	return action.reveal(payload.Player, payload.Nonce, payload.Secret, payload.Salt, nil, st.EventReveal)
}

//ConsumeRandomness 混入外部随机数
func (action *Action) ConsumeRandomness(payload *st.SlotConsumeRandomness) (*types.Receipt, error) {
	return action.reveal(payload.Player, payload.Nonce, payload.Secret, payload.Salt, payload.ExternalEntropy, st.EventConsumeRandomness)
}

func (action *Action) reveal(player string, nonce, secret, salt uint64, external []byte, event st.Event) (*types.Receipt, error) {
	if action.fromaddr != player {
		return nil, st.ErrInvalidPlayer
	}
	c, err := getCommitment(action.db, player, nonce)
	if err != nil {
		return nil, err
	}
	if c.Revealed() {
		return nil, st.ErrAlreadyRevealed
	}
	if err := action.checkDelay(c); err != nil {
		return nil, err
	}
	identity, err := st.PlayerIdentity(player)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidAddress, "%s: %v", player, err)
	}
	hash := st.CalcCommitHash(secret, salt, identity)
	if !bytes.Equal(hash[:], c.Hash) {
		return nil, st.ErrInvalidReveal
	}
	next, err := c.Status.Next(event)
	if err != nil {
		return nil, err
	}
	if event == st.EventConsumeRandomness && len(external) == 0 {
		client, err := getRandomnessClient(action.db, c.Operator)
		if err != nil && err != st.ErrRandomnessClientNotFound {
			return nil, err
		}
		if client != nil && client.UseExternalEntropy {
			return nil, st.ErrExternalEntropyRequired
		}
	}

	// 先标记开奖, 后面派奖失败时整个交易回滚
	prev := c.Status
	c.Status = next
	c.RevealedAt = action.blocktime
	if err := action.saveCommitment(c); err != nil {
		return nil, err
	}

	draw := DeriveDraw(&DrawInput{
		Secret:     secret,
		Salt:       salt,
		Height:     uint64(action.height),
		BlockTime:  action.blocktime,
		CommitTime: c.CreatedAt,
		Player:     identity,
		Bet:        c.Bet,
		External:   external,
	})
	tier, err := SelectTier(action.params.Tiers, draw)
	if err != nil {
		return nil, err
	}
	payout, err := Settle(c.Bet, tier.Multiplier)
	if err != nil {
		return nil, err
	}
	kv := dapp.NewKVCreator(action.db)
	if payout > 0 {
		cfg, err := getOperatorConfig(action.db, c.Operator)
		if err != nil {
			return nil, err
		}
		receipt, err := action.coinsAccount.Transfer(cfg.Escrow, player, payout)
		if err != nil {
			slog.Error("Reveal", "addr", player, "nonce", nonce, "escrow", cfg.Escrow, "payout", payout, "err", err)
			return nil, err
		}
		kv.AddReceipt(receipt)
	}
	c.Draw = draw
	c.Multiplier = tier.Multiplier
	c.Payout = payout
	c.Label = tier.Label
	kv.AddEncode(calcCommitmentKey(player, nonce), c)
	kv.AddLog(st.TyLogSlotSpin, &st.ReceiptSpin{
		Player:     player,
		Operator:   c.Operator,
		Nonce:      nonce,
		Draw:       draw,
		Multiplier: tier.Multiplier,
		Payout:     payout,
		Label:      tier.Label,
		Height:     action.height,
		BlockTime:  action.blocktime,
		External:   event == st.EventConsumeRandomness,
	})
	slog.Debug("Reveal", "addr", player, "nonce", nonce, "prev", prev, "draw", draw, "label", tier.Label, "payout", payout)
	return kv.Receipt()
}
