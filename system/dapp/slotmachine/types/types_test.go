package types

import (
	"testing"

	"github.com/33cn/slotmachine/common/address"
	"github.com/33cn/slotmachine/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusNext(t *testing.T) {
	cases := []struct {
		from  Status
		event Event
		next  Status
		err   error
	}{
		{StatusPending, EventRequestRandomness, StatusRandomnessRequested, nil},
		{StatusPending, EventReveal, StatusRevealed, nil},
		{StatusPending, EventConsumeRandomness, StatusPending, ErrRandomnessNotRequested},
		{StatusRandomnessRequested, EventRequestRandomness, StatusRandomnessRequested, ErrRandomnessAlreadyRequested},
		{StatusRandomnessRequested, EventReveal, StatusRevealed, nil},
		{StatusRandomnessRequested, EventConsumeRandomness, StatusRevealed, nil},
		{StatusRevealed, EventRequestRandomness, StatusRevealed, ErrAlreadyRevealed},
		{StatusRevealed, EventReveal, StatusRevealed, ErrAlreadyRevealed},
		{StatusRevealed, EventConsumeRandomness, StatusRevealed, ErrAlreadyRevealed},
		{StatusUnknown, EventReveal, StatusUnknown, ErrInvalidTransition},
		{StatusPending, Event(9), StatusPending, ErrInvalidTransition},
	}
	for _, c := range cases {
		next, err := c.from.Next(c.event)
		assert.Equal(t, c.err, err, "%s + %s", c.from, c.event)
		assert.Equal(t, c.next, next, "%s + %s", c.from, c.event)
	}
	assert.Equal(t, "Revealed", StatusRevealed.String())
	assert.Equal(t, "Unknown", Event(0).String())
}

func TestTierTableValidate(t *testing.T) {
	require.NoError(t, DefaultTiers().Validate())

	bad := []TierTable{
		{},
		{{Threshold: decimal.NewFromInt(50), Multiplier: 2, Label: "Half"}},
		{{Threshold: decimal.NewFromInt(50), Multiplier: 2, Label: "Half"}, {Threshold: decimal.NewFromInt(0), Multiplier: 1, Label: "Rest"}},
		{{Threshold: decimal.NewFromInt(50), Multiplier: 2, Label: "Half"}, {Threshold: decimal.NewFromInt(1), Multiplier: 0, Label: "Rest"}},
		{{Threshold: decimal.NewFromInt(50), Multiplier: 2, Label: "Half"}, {Threshold: decimal.NewFromInt(60), Multiplier: 0, Label: "Rest"}},
		{{Threshold: decimal.NewFromInt(50), Multiplier: 2}, {Threshold: decimal.Zero, Multiplier: 0, Label: "Rest"}},
	}
	for i, table := range bad {
		assert.Equal(t, ErrInvalidTierTable, errors.Cause(table.Validate()), "table %d", i)
	}

	ok := TierTable{
		{Threshold: decimal.RequireFromString("50.5"), Multiplier: 2, Label: "Half"},
		{Threshold: decimal.RequireFromString("0.5"), Multiplier: 0, Label: "Rest"},
	}
	assert.NoError(t, ok.Validate())
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)

	p, err = ParseParams([]byte(`{"minBet":"0.1","maxBet":"2","minDelay":5,
		"tiers":[{"threshold":"90","multiplier":4,"label":"Top"},{"threshold":"0","multiplier":0,"label":"Miss"}]}`))
	require.NoError(t, err)
	assert.Equal(t, types.Coin/10, p.MinBet)
	assert.Equal(t, 2*types.Coin, p.MaxBet)
	assert.Equal(t, int64(5), p.MinDelay)
	require.Len(t, p.Tiers, 2)
	assert.Equal(t, "Top", p.Tiers[0].Label)
	assert.True(t, p.Tiers[0].Threshold.Equal(decimal.NewFromInt(90)))

	_, err = ParseParams([]byte(`{"minBet":"2","maxBet":"1"}`))
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
	_, err = ParseParams([]byte(`{"minBet":"0.0000000001"}`))
	assert.Equal(t, types.ErrAmount, errors.Cause(err))
	_, err = ParseParams([]byte(`{"minDelay":-1}`))
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
}

func TestCommitHash(t *testing.T) {
	player := "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
	h, err := CommitHash(1, 2, player)
	require.NoError(t, err)
	assert.Len(t, h, HashLen)

	id, err := PlayerIdentity(player)
	require.NoError(t, err)
	assert.Len(t, id, 20)
	expect := CalcCommitHash(1, 2, id)
	assert.Equal(t, expect[:], h)

	other, err := CommitHash(1, 2, address.ExecAddress(SlotX))
	require.NoError(t, err)
	assert.NotEqual(t, h, other)
	swapped, err := CommitHash(2, 1, player)
	require.NoError(t, err)
	assert.NotEqual(t, h, swapped)

	_, err = CommitHash(1, 2, "not an address")
	assert.Error(t, err)

	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Uint64LE(1))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, Int64LE(-1))
}

func TestDecodeSpin(t *testing.T) {
	_, err := DecodeSpin(nil)
	assert.Equal(t, ErrNotFound, err)

	spin := &ReceiptSpin{Player: "p", Draw: 82, Multiplier: 2, Payout: 20000000, Label: "Win"}
	receipt := &types.Receipt{
		Ty: types.ExecOk,
		Logs: []*types.ReceiptLog{
			{Ty: types.TyLogTransfer, Log: []byte{0}},
			{Ty: TyLogSlotSpin, Log: types.Encode(spin)},
		},
	}
	got, err := DecodeSpin(receipt)
	require.NoError(t, err)
	assert.Equal(t, spin, got)

	_, err = DecodeSpin(&types.Receipt{})
	assert.Equal(t, ErrNotFound, err)
}

func TestActionTx(t *testing.T) {
	tx := CreateCommitTx("op", make([]byte, 32), 100, 3)
	assert.Equal(t, ExecerSlot, tx.Execer)
	var action SlotmachineAction
	require.NoError(t, types.Decode(tx.Payload, &action))
	assert.Equal(t, int32(SlotActionCommit), action.GetTy())
	require.NotNil(t, action.GetCommit())
	assert.Equal(t, uint64(3), action.GetCommit().Nonce)
	assert.Nil(t, action.GetReveal())

	for name, ty := range GetTypeMap() {
		assert.NotEmpty(t, name)
		assert.True(t, ty >= SlotActionInitialize && ty <= SlotActionConsumeRandomness)
	}
}
