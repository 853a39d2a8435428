package app

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"

	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/app"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/store/iavl"
	"github.com/vaultswap/ledger/x/sigs"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
)

const chainID = "offer-test-chain"

func TestTxEncoding(t *testing.T) {
	key := ledgertest.NewKey(t)
	msg := &system.TransferMsg{
		From:     key.PublicKey(),
		To:       ledgertest.RandomAddr(t),
		Lamports: 42,
	}

	tx, err := NewTx(msg)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, chainID, 0))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	signed := decoded.(sigs.SignedTx)
	require.Len(t, signed.GetSignatures(), 1)
	assert.Equal(t, key.PublicKey(), signed.GetSignatures()[0].PubKey)

	// signatures are not part of the signed bytes
	before, err := tx.GetSignBytes()
	require.NoError(t, err)
	tx.Signatures = nil
	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = (&Tx{Path: "nothing/here"}).GetMsg()
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = TxDecoder([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestMsgPaths(t *testing.T) {
	paths := MsgPaths()
	assert.Len(t, paths, 10)
	assert.Contains(t, paths, "escrow/make_offer")
	assert.Contains(t, paths, "token/create_associated_account")
}

func signedTx(t *testing.T, key solana.PrivateKey, seq int64, msg ledger.Msg) []byte {
	t.Helper()
	tx, err := NewTx(msg)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key, chainID, seq))
	raw, err := tx.Marshal()
	require.NoError(t, err)
	return raw
}

func TestApplication(t *testing.T) {
	faucet := ledgertest.NewKey(t)
	recipient := ledgertest.RandomAddr(t)

	a, err := Application(iavl.MockCommitStore(), Options{})
	require.NoError(t, err)

	genesis, err := GenInitOptions(faucet.PublicKey())
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: genesis})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: chainID}})

	transfer := signedTx(t, faucet, 0, &system.TransferMsg{
		From:     faucet.PublicKey(),
		To:       recipient,
		Lamports: 1000000,
	})
	chk := a.CheckTx(transfer)
	require.Equal(t, uint32(0), chk.Code, chk.Log)

	res := a.DeliverTx(transfer)
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Contains(t, res.Tags, common.KVPair{Key: []byte("action"), Value: []byte("system/transfer")})

	// the same signature cannot be replayed
	res = a.DeliverTx(transfer)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code)

	// a message of an unknown signer cannot pay the fee
	poor := ledgertest.NewKey(t)
	res = a.DeliverTx(signedTx(t, poor, 0, &system.TransferMsg{
		From:     poor.PublicKey(),
		To:       recipient,
		Lamports: 1,
	}))
	assert.Equal(t, errors.ErrInsufficientFunds.ABCICode(), res.Code)

	mint := ledgertest.NewKey(t)
	tx, err := NewTx(&token.CreateMintMsg{
		Payer:         faucet.PublicKey(),
		Mint:          mint.PublicKey(),
		MintAuthority: faucet.PublicKey(),
		Decimals:      6,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Sign(faucet, chainID, 1))
	require.NoError(t, tx.Sign(mint, chainID, 0))
	raw, err := tx.Marshal()
	require.NoError(t, err)
	res = a.DeliverTx(raw)
	require.Equal(t, uint32(0), res.Code, res.Log)

	a.EndBlock(abci.RequestEndBlock{Height: 1})
	a.Commit()

	var acct system.Account
	q := a.Query(abci.RequestQuery{Path: "/accounts", Data: recipient[:]})
	require.Equal(t, uint32(0), q.Code, q.Log)
	require.NoError(t, app.UnmarshalOneResult(q.Value, &acct))
	assert.Equal(t, uint64(1000000), acct.Lamports)

	var m token.Mint
	q = a.Query(abci.RequestQuery{Path: "/mints", Data: mint.PublicKey().Bytes()})
	require.Equal(t, uint32(0), q.Code, q.Log)
	require.NoError(t, app.UnmarshalOneResult(q.Value, &m))
	assert.Equal(t, faucet.PublicKey(), m.MintAuthority)
	assert.Equal(t, uint8(6), m.Decimals)
}
