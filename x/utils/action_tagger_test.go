package utils_test

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/ledgertest"
	"github.com/vaultswap/ledger/ledgertest/assert"
	"github.com/vaultswap/ledger/store"
	"github.com/vaultswap/ledger/x/utils"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack ledger.Handler
		tx    ledger.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: ledgertest.Decorate(&ledgertest.Handler{}, utils.NewActionTagger()),
			tx:    &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/make"}},
			tags:  []common.KVPair{stringTag(utils.ActionKey, "escrow/make")},
		},
		"passes through error": {
			stack: ledgertest.Decorate(&ledgertest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/make"}},
			err:   errors.ErrHuman,
		},
		"broken message": {
			stack: ledgertest.Decorate(&ledgertest.Handler{}, utils.NewActionTagger()),
			tx:    &ledgertest.Tx{Err: errors.ErrInput},
			err:   errors.ErrInput,
		},
		"tags are additive": {
			stack: ledgertest.Decorate(&ledgertest.Handler{
				DeliverResult: ledger.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			}, utils.NewActionTagger()),
			tx:   &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/take"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "escrow/take")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("Unexpected error type returned: %v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
