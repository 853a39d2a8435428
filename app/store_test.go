package app

import (
	"context"
	"testing"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/orm"
)

// itemsInitializer copies the genesis "items" entries into the items bucket.
type itemsInitializer struct{}

func (itemsInitializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	var items map[string]string
	if err := opts.ReadOptions("items", &items); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	b := orm.NewBucket("items")
	for k, v := range items {
		if err := b.Set(db, []byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func pathDecoder(raw []byte) (ledger.Tx, error) {
	if len(raw) == 0 {
		panic("empty transaction")
	}
	return &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: string(raw)}}, nil
}

func newTestApp(t *testing.T, db ledger.CommitKVStore) BaseApp {
	t.Helper()

	qr := ledger.NewQueryRouter()
	orm.NewBucket("items").Register("", qr)

	r := NewRouter()
	r.Handle("items/write", &ledgertest.WriteHandler{
		Key:   []byte("items:written"),
		Value: []byte("yes"),
	})

	sa, err := NewStoreApp("test-app", db, qr, context.Background())
	assert.Nil(t, err)
	sa = sa.WithInit(itemsInitializer{})
	return NewBaseApp(sa, pathDecoder, ChainDecorators().WithHandler(r), false)
}

func queryOne(t *testing.T, a BaseApp, path string, key string) [][]byte {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: path, Data: []byte(key)})
	assert.Equal(t, uint32(0), res.Code)
	var values ResultSet
	assert.Nil(t, values.Unmarshal(res.Value))
	return values.Results
}

func TestStoreAppLifecycle(t *testing.T) {
	db, cleanup := ledgertest.CommitKVStore(t)
	defer cleanup()

	a := newTestApp(t, db)
	assert.Equal(t, "", a.GetChainID())

	a.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{"items": {"genesis": "hello"}}`),
	})
	assert.Equal(t, "test-chain-1", a.GetChainID())

	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, ChainID: "test-chain-1"}})

	chk := a.CheckTx([]byte("items/write"))
	assert.Equal(t, uint32(0), chk.Code)
	dres := a.DeliverTx([]byte("items/write"))
	assert.Equal(t, uint32(0), dres.Code)

	// nothing is visible before the commit
	assert.Equal(t, 0, len(queryOne(t, a, "/items", "written")))

	a.EndBlock(abci.RequestEndBlock{Height: 1})
	cres := a.Commit()
	if len(cres.Data) == 0 {
		t.Fatal("empty app hash")
	}

	assert.Equal(t, [][]byte{[]byte("yes")}, queryOne(t, a, "/items", "written"))
	assert.Equal(t, [][]byte{[]byte("hello")}, queryOne(t, a, "/items", "genesis"))
	assert.Equal(t, 2, len(queryOne(t, a, "/items?prefix", "")))

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)
	assert.Equal(t, "test-app", info.Data)

	// A second app on the same database picks the chain id up.
	again := newTestApp(t, db)
	assert.Equal(t, "test-chain-1", again.GetChainID())
	assert.Panics(t, func() {
		again.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})
	})
}

func TestStoreAppErrors(t *testing.T) {
	db, cleanup := ledgertest.CommitKVStore(t)
	defer cleanup()
	a := newTestApp(t, db)

	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "test-chain-1"})
	})
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})

	res := a.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = a.Query(abci.RequestQuery{Path: "/items?range"})
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	dres := a.DeliverTx([]byte("items/missing"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), dres.Code)

	chk := a.CheckTx(nil)
	assert.Equal(t, errors.ErrPanic.ABCICode(), chk.Code)
}

func TestResults(t *testing.T) {
	models := []ledger.Model{
		ledger.Pair([]byte("a"), []byte("1")),
		ledger.Pair([]byte("b"), []byte("2")),
	}
	keys, err := ResultsFromKeys(models).Marshal()
	assert.Nil(t, err)
	values, err := ResultsFromValues(models).Marshal()
	assert.Nil(t, err)

	var k, v ResultSet
	assert.Nil(t, k.Unmarshal(keys))
	assert.Nil(t, v.Unmarshal(values))
	joined, err := JoinResults(&k, &v)
	assert.Nil(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(&k, &ResultSet{})
	assert.IsErr(t, errors.ErrInput, err)

	empty, err := ResultsFromValues(nil).Marshal()
	assert.Nil(t, err)
	var dst ledgertest.Msg
	assert.IsErr(t, errors.ErrNotFound, UnmarshalOneResult(empty, &dst))
	assert.Nil(t, UnmarshalOneResult(values, &dst))
	assert.Equal(t, []byte("1"), dst.Serialized)
}

func TestChainInitializers(t *testing.T) {
	db, cleanup := ledgertest.CommitKVStore(t)
	defer cleanup()
	kv := db.CacheWrap()

	init := ChainInitializers(itemsInitializer{}, itemsInitializer{})
	assert.Nil(t, init.FromGenesis(ledger.Options{}, kv))

	bad := ledger.Options{"items": []byte(`"not a map"`)}
	assert.IsErr(t, errors.ErrInput, init.FromGenesis(bad, kv))
}
