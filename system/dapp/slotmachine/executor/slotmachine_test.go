package executor

import (
	"testing"

	"github.com/33cn/slotmachine/account"
	"github.com/33cn/slotmachine/common"
	"github.com/33cn/slotmachine/common/address"
	"github.com/33cn/slotmachine/common/crypto"
	_ "github.com/33cn/slotmachine/common/crypto/secp256k1"
	dbm "github.com/33cn/slotmachine/common/db"
	st "github.com/33cn/slotmachine/system/dapp/slotmachine/types"
	"github.com/33cn/slotmachine/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	operatorKey = "CC38546E9E659D15E6B4893F0AB32A06D103931A8230B0BDE71459D2B27D6944"
	playerKey   = "4257D8692EF7FE13C68B65D6A52F03933DB2FA5CE8FAF210B5B8B80C721CED01"
)

// 测试中不需要回滚, 直接写入内存数据库
type testKV struct {
	*dbm.GoMemDB
}

func (testKV) Begin()        {}
func (testKV) Rollback()     {}
func (testKV) Commit() error { return nil }

type testEnv struct {
	t         *testing.T
	kv        testKV
	slot      *Slotmachine
	coins     *account.DB
	height    int64
	blocktime int64
	operator  crypto.PrivKey
	player    crypto.PrivKey
}

func getprivkey(t *testing.T, key string) crypto.PrivKey {
	cr, err := crypto.New(types.GetSignName(types.SECP256K1))
	require.NoError(t, err)
	bkey, err := common.FromHex(key)
	require.NoError(t, err)
	priv, err := cr.PrivKeyFromBytes(bkey)
	require.NoError(t, err)
	return priv
}

func newTestEnv(t *testing.T) *testEnv {
	mem, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	kv := testKV{mem}
	coins, err := account.NewAccountDB(types.DefaultCoinSymbol, kv)
	require.NoError(t, err)
	env := &testEnv{
		t:         t,
		kv:        kv,
		slot:      newSlotmachine().(*Slotmachine),
		coins:     coins,
		blocktime: 1600000000,
		operator:  getprivkey(t, operatorKey),
		player:    getprivkey(t, playerKey),
	}
	env.slot.SetStateDB(kv)
	env.slot.SetCoinsAccount(coins)
	_, err = coins.GenesisInit(env.addr(env.operator), 1000*types.Coin)
	require.NoError(t, err)
	_, err = coins.GenesisInit(env.addr(env.player), 10*types.Coin)
	require.NoError(t, err)
	return env
}

func (env *testEnv) addr(priv crypto.PrivKey) string {
	return address.PubKeyToAddress(priv.PubKey().Bytes()).String()
}

func (env *testEnv) exec(priv crypto.PrivKey, tx *types.Transaction) (*types.Receipt, error) {
	tx.Sign(types.SECP256K1, priv)
	env.height++
	env.slot.SetEnv(env.height, env.blocktime)
	receipt, err := env.slot.Exec(tx, 0)
	env.slot.ObserveReceipt(receipt, err)
	return receipt, err
}

func (env *testEnv) balance(addr string) int64 {
	return env.coins.LoadAccount(addr).GetBalance()
}

// setup 初始化运营方并注资
func (env *testEnv) setup(fund int64) *st.OperatorConfig {
	_, err := env.exec(env.operator, st.CreateInitializeTx())
	require.NoError(env.t, err)
	if fund > 0 {
		_, err = env.exec(env.operator, st.CreateFundEscrowTx(fund))
		require.NoError(env.t, err)
	}
	cfg, err := getOperatorConfig(env.kv, env.addr(env.operator))
	require.NoError(env.t, err)
	return cfg
}

func (env *testEnv) commit(nonce, secret, salt uint64, bet int64) error {
	player := env.addr(env.player)
	hash, err := st.CommitHash(secret, salt, player)
	require.NoError(env.t, err)
	_, err = env.exec(env.player, st.CreateCommitTx(env.addr(env.operator), hash, bet, nonce))
	return err
}

// findSecret 找到一个在给定环境下抽奖值满足 pred 的 secret
func (env *testEnv) findSecret(salt uint64, bet int64, height, blocktime, commitTime int64, external []byte, pred func(uint64) bool) uint64 {
	identity, err := st.PlayerIdentity(env.addr(env.player))
	require.NoError(env.t, err)
	for secret := uint64(1); secret < 100000; secret++ {
		draw := DeriveDraw(&DrawInput{
			Secret:     secret,
			Salt:       salt,
			Height:     uint64(height),
			BlockTime:  blocktime,
			CommitTime: commitTime,
			Player:     identity,
			Bet:        bet,
			External:   external,
		})
		if pred(draw) {
			return secret
		}
	}
	env.t.Fatal("no secret found")
	return 0
}

func TestInitialize(t *testing.T) {
	env := newTestEnv(t)
	operator := env.addr(env.operator)
	receipt, err := env.exec(env.operator, st.CreateInitializeTx())
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, int32(st.TyLogSlotInitialize), receipt.Logs[0].Ty)

	cfg, err := getOperatorConfig(env.kv, operator)
	require.NoError(t, err)
	assert.Equal(t, operator, cfg.Authority)
	assert.NotEqual(t, operator, cfg.Escrow)

	_, err = env.exec(env.operator, st.CreateInitializeTx())
	assert.Equal(t, st.ErrAlreadyInitialized, err)
}

func TestRandomnessClient(t *testing.T) {
	env := newTestEnv(t)
	operator := env.addr(env.operator)
	_, err := env.exec(env.operator, st.CreateSetRandomnessClientTx(true))
	assert.Equal(t, st.ErrRandomnessClientNotFound, err)

	_, err = env.exec(env.operator, st.CreateInitRandomnessClientTx())
	require.NoError(t, err)
	client, err := getRandomnessClient(env.kv, operator)
	require.NoError(t, err)
	assert.False(t, client.UseExternalEntropy)

	_, err = env.exec(env.operator, st.CreateInitRandomnessClientTx())
	assert.Equal(t, st.ErrAlreadyInitialized, err)

	_, err = env.exec(env.operator, st.CreateSetRandomnessClientTx(true))
	require.NoError(t, err)
	client, err = getRandomnessClient(env.kv, operator)
	require.NoError(t, err)
	assert.True(t, client.UseExternalEntropy)

	//其他人只能操作自己的记录
	_, err = env.exec(env.player, st.CreateSetRandomnessClientTx(false))
	assert.Equal(t, st.ErrRandomnessClientNotFound, err)
}

func TestFundEscrow(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.exec(env.operator, st.CreateFundEscrowTx(types.Coin))
	assert.Equal(t, st.ErrConfigNotFound, err)

	cfg := env.setup(5 * types.Coin)
	assert.Equal(t, 5*types.Coin, env.balance(cfg.Escrow))
	assert.Equal(t, 995*types.Coin, env.balance(env.addr(env.operator)))

	_, err = env.exec(env.operator, st.CreateFundEscrowTx(10000*types.Coin))
	assert.True(t, errorIs(err, types.ErrInsufficientFunds))
}

func TestCommit(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.setup(0)
	player := env.addr(env.player)

	assert.Equal(t, st.ErrBetTooLow, env.commit(1, 1, 1, 5000000))
	assert.Equal(t, st.ErrBetTooHigh, env.commit(1, 1, 1, types.Coin+1))
	_, err := getCommitment(env.kv, player, 1)
	assert.Equal(t, st.ErrCommitmentNotFound, err)
	assert.Equal(t, 10*types.Coin, env.balance(player))

	_, err = env.exec(env.player, st.CreateCommitTx(env.addr(env.operator), []byte("short"), types.Coin/10, 1))
	assert.Equal(t, st.ErrInvalidHash, err)
	_, err = env.exec(env.player, st.CreateCommitTx(player, make([]byte, 32), types.Coin/10, 1))
	assert.Equal(t, st.ErrConfigNotFound, err)

	require.NoError(t, env.commit(1, 7, 8, types.Coin/100))
	c, err := getCommitment(env.kv, player, 1)
	require.NoError(t, err)
	assert.Equal(t, st.StatusPending, c.Status)
	assert.Equal(t, env.blocktime, c.CreatedAt)
	assert.Equal(t, types.Coin/100, c.Bet)
	assert.False(t, c.RandomnessRequested)
	assert.Equal(t, types.Coin/100, env.balance(cfg.Escrow))
	assert.Equal(t, 10*types.Coin-types.Coin/100, env.balance(player))

	assert.Equal(t, st.ErrCommitmentExists, env.commit(1, 9, 9, types.Coin/100))
}

func TestCommitInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	env.setup(0)
	poor, err := crypto.New(types.GetSignName(types.SECP256K1))
	require.NoError(t, err)
	priv, err := poor.GenKey()
	require.NoError(t, err)
	hash := make([]byte, 32)
	_, err = env.exec(priv, st.CreateCommitTx(env.addr(env.operator), hash, types.Coin/10, 1))
	assert.True(t, errorIs(err, types.ErrInsufficientFunds))
	_, err = getCommitment(env.kv, env.addr(priv), 1)
	assert.Equal(t, st.ErrCommitmentNotFound, err)
}

func TestRevealWin(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.setup(100 * types.Coin)
	player := env.addr(env.player)
	bet := types.Coin / 100
	commitTime := env.blocktime
	revealTime := commitTime + 2
	// commit 在高度 3, reveal 在高度 4
	secret := env.findSecret(11, bet, 4, revealTime, commitTime, nil, func(d uint64) bool { return d > 80 && d <= 90 })
	require.NoError(t, env.commit(1, secret, 11, bet))

	env.blocktime = revealTime
	receipt, err := env.exec(env.player, st.CreateRevealTx(player, 1, secret, 11))
	require.NoError(t, err)
	spin, err := st.DecodeSpin(receipt)
	require.NoError(t, err)
	assert.Equal(t, "Win", spin.Label)
	assert.Equal(t, uint64(2), spin.Multiplier)
	assert.Equal(t, 2*bet, spin.Payout)
	assert.Equal(t, int64(4), spin.Height)
	assert.False(t, spin.External)

	c, err := getCommitment(env.kv, player, 1)
	require.NoError(t, err)
	assert.True(t, c.Revealed())
	assert.Equal(t, spin.Draw, c.Draw)
	assert.Equal(t, revealTime, c.RevealedAt)
	assert.Equal(t, 10*types.Coin+bet, env.balance(player))
	assert.Equal(t, 100*types.Coin-bet, env.balance(cfg.Escrow))

	_, err = env.exec(env.player, st.CreateRevealTx(player, 1, secret, 11))
	assert.Equal(t, st.ErrAlreadyRevealed, err)
	assert.Equal(t, st.ErrCommitmentExists, env.commit(1, secret, 11, bet))
}

func TestRevealLose(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.setup(types.Coin)
	player := env.addr(env.player)
	bet := types.Coin / 10
	commitTime := env.blocktime
	secret := env.findSecret(0, bet, 4, commitTime+5, commitTime, nil, func(d uint64) bool { return d <= 65 })
	require.NoError(t, env.commit(2, secret, 0, bet))
	env.blocktime += 5
	receipt, err := env.exec(env.player, st.CreateRevealTx(player, 2, secret, 0))
	require.NoError(t, err)
	spin, err := st.DecodeSpin(receipt)
	require.NoError(t, err)
	assert.Equal(t, "Try Again", spin.Label)
	assert.Equal(t, int64(0), spin.Payout)
	assert.Equal(t, types.Coin+bet, env.balance(cfg.Escrow))
	assert.Equal(t, 10*types.Coin-bet, env.balance(player))
}

func TestRevealChecks(t *testing.T) {
	env := newTestEnv(t)
	env.setup(types.Coin)
	player := env.addr(env.player)
	require.NoError(t, env.commit(1, 5, 6, types.Coin/100))

	//不是自己的下注
	_, err := env.exec(env.operator, st.CreateRevealTx(player, 1, 5, 6))
	assert.Equal(t, st.ErrInvalidPlayer, err)
	_, err = env.exec(env.player, st.CreateRevealTx(player, 2, 5, 6))
	assert.Equal(t, st.ErrCommitmentNotFound, err)

	env.blocktime++
	_, err = env.exec(env.player, st.CreateRevealTx(player, 1, 5, 6))
	assert.True(t, errorIs(err, st.ErrInsufficientDelay))

	env.blocktime++
	_, err = env.exec(env.player, st.CreateRevealTx(player, 1, 5, 7))
	assert.Equal(t, st.ErrInvalidReveal, err)
	_, err = env.exec(env.player, st.CreateConsumeRandomnessTx(player, 1, 5, 6, []byte("vrf")))
	assert.Equal(t, st.ErrRandomnessNotRequested, err)

	//延迟刚好等于 MinDelay 可以开奖
	_, err = env.exec(env.player, st.CreateRevealTx(player, 1, 5, 6))
	require.NoError(t, err)
}

func TestConsumeRandomness(t *testing.T) {
	env := newTestEnv(t)
	env.setup(100 * types.Coin)
	_, err := env.exec(env.operator, st.CreateInitRandomnessClientTx())
	require.NoError(t, err)
	_, err = env.exec(env.operator, st.CreateSetRandomnessClientTx(true))
	require.NoError(t, err)
	player := env.addr(env.player)
	require.NoError(t, env.commit(3, 1, 2, types.Coin/100))

	_, err = env.exec(env.operator, st.CreateRequestRandomnessTx(player, 3))
	assert.Equal(t, st.ErrInvalidPlayer, err)
	_, err = env.exec(env.player, st.CreateRequestRandomnessTx(player, 3))
	assert.True(t, errorIs(err, st.ErrInsufficientDelay))

	env.blocktime += 3
	_, err = env.exec(env.player, st.CreateRequestRandomnessTx(player, 3))
	require.NoError(t, err)
	c, err := getCommitment(env.kv, player, 3)
	require.NoError(t, err)
	assert.True(t, c.RandomnessRequested)
	assert.Equal(t, st.StatusRandomnessRequested, c.Status)

	_, err = env.exec(env.player, st.CreateRequestRandomnessTx(player, 3))
	assert.Equal(t, st.ErrRandomnessAlreadyRequested, err)

	_, err = env.exec(env.player, st.CreateConsumeRandomnessTx(player, 3, 1, 2, nil))
	assert.Equal(t, st.ErrExternalEntropyRequired, err)

	receipt, err := env.exec(env.player, st.CreateConsumeRandomnessTx(player, 3, 1, 2, []byte("external entropy")))
	require.NoError(t, err)
	spin, err := st.DecodeSpin(receipt)
	require.NoError(t, err)
	assert.True(t, spin.External)
	assert.True(t, spin.Draw >= 1 && spin.Draw <= 100)

	_, err = env.exec(env.player, st.CreateRequestRandomnessTx(player, 3))
	assert.Equal(t, st.ErrAlreadyRevealed, err)
}

func TestRevealUnderfundedEscrow(t *testing.T) {
	env := newTestEnv(t)
	env.setup(0)
	player := env.addr(env.player)
	bet := types.Coin / 10
	commitTime := env.blocktime
	secret := env.findSecret(3, bet, 3, commitTime+2, commitTime, nil, func(d uint64) bool { return d > 80 })
	require.NoError(t, env.commit(1, secret, 3, bet))
	env.blocktime += 2
	_, err := env.exec(env.player, st.CreateRevealTx(player, 1, secret, 3))
	assert.True(t, errorIs(err, types.ErrInsufficientFunds))
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.setup(types.Coin)
	operator := env.addr(env.operator)
	player := env.addr(env.player)
	require.NoError(t, env.commit(2, 1, 1, types.Coin/100))
	require.NoError(t, env.commit(1, 2, 2, types.Coin/100))
	require.NoError(t, env.commit(10, 3, 3, types.Coin/100))

	reply, err := env.slot.Query(st.FuncNameGetOperatorConfig, types.Encode(&st.ReqOperator{Operator: operator}))
	require.NoError(t, err)
	assert.Equal(t, cfg.Escrow, reply.(*st.OperatorConfig).Escrow)

	_, err = env.slot.Query(st.FuncNameGetRandomnessClient, types.Encode(&st.ReqOperator{Operator: operator}))
	assert.Equal(t, st.ErrRandomnessClientNotFound, err)

	reply, err = env.slot.Query(st.FuncNameGetCommitment, types.Encode(&st.ReqCommitment{Player: player, Nonce: 1}))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reply.(*st.Commitment).Nonce)

	reply, err = env.slot.Query(st.FuncNameListCommitments, types.Encode(&st.ReqCommitments{Player: player}))
	require.NoError(t, err)
	list := reply.(*st.ReplyCommitments).Commitments
	require.Len(t, list, 3)
	assert.Equal(t, uint64(1), list[0].Nonce)
	assert.Equal(t, uint64(2), list[1].Nonce)
	assert.Equal(t, uint64(10), list[2].Nonce)

	reply, err = env.slot.Query(st.FuncNameGetBalance, types.Encode(&types.ReqBalance{Addr: cfg.Escrow}))
	require.NoError(t, err)
	assert.Equal(t, types.Coin+3*types.Coin/100, reply.(*types.Account).Balance)

	_, err = env.slot.Query("Nothing", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestSetSubConfig(t *testing.T) {
	s := newSlotmachine().(*Slotmachine)
	require.NoError(t, s.SetSubConfig(nil))
	assert.Equal(t, st.DefaultMinBet, s.Params().MinBet)

	require.NoError(t, s.SetSubConfig([]byte(`{"minBet":"0.5","minDelay":0}`)))
	assert.Equal(t, types.Coin/2, s.Params().MinBet)
	assert.Equal(t, int64(0), s.Params().MinDelay)

	err := s.SetSubConfig([]byte(`{"tiers":[{"threshold":"50","multiplier":2,"label":"Half"}]}`))
	assert.True(t, errorIs(err, st.ErrInvalidTierTable))
}

func TestTierMetricName(t *testing.T) {
	assert.Equal(t, "slotmachine.tier.big_win", tierMetricName("Big Win"))
	assert.Equal(t, "slotmachine.tier.jackpot", tierMetricName("JACKPOT"))
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	m := env.slot.metrics
	commits, rejects, reveals := m.commit.Count(), m.reject.Count(), m.reveal.Count()

	env.setup(types.Coin)
	require.NoError(t, env.commit(1, 1, 1, types.Coin/100))
	assert.Equal(t, st.ErrBetTooLow, env.commit(2, 1, 1, 1))
	env.blocktime += 2
	receipt, err := env.exec(env.player, st.CreateRevealTx(env.addr(env.player), 1, 1, 1))
	require.NoError(t, err)
	spin, err := st.DecodeSpin(receipt)
	require.NoError(t, err)

	assert.Equal(t, commits+1, m.commit.Count())
	assert.Equal(t, rejects+1, m.reject.Count())
	assert.Equal(t, reveals+1, m.reveal.Count())
	assert.True(t, m.tier(spin.Label).Count() >= 1)
}

func TestMetricsOnlyObserved(t *testing.T) {
	env := newTestEnv(t)
	m := env.slot.metrics
	env.setup(types.Coin)
	commits, rejects := m.commit.Count(), m.reject.Count()

	player := env.addr(env.player)
	hash, err := st.CommitHash(1, 1, player)
	require.NoError(t, err)
	tx := st.CreateCommitTx(env.addr(env.operator), hash, types.Coin/100, 1)
	tx.Sign(types.SECP256K1, env.player)
	env.height++
	env.slot.SetEnv(env.height, env.blocktime)
	receipt, err := env.slot.Exec(tx, 0)
	require.NoError(t, err)
	assert.Equal(t, commits, m.commit.Count())

	env.slot.ObserveReceipt(nil, types.ErrInvalidParam)
	assert.Equal(t, commits, m.commit.Count())
	assert.Equal(t, rejects+1, m.reject.Count())

	env.slot.ObserveReceipt(receipt, nil)
	assert.Equal(t, commits+1, m.commit.Count())
}
