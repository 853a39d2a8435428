/*
Package app links together all the various components
to construct the offerd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/app"
	"github.com/vaultswap/ledger/errors"
	"github.com/vaultswap/ledger/store/iavl"
	"github.com/vaultswap/ledger/x"
	"github.com/vaultswap/ledger/x/escrow"
	"github.com/vaultswap/ledger/x/sigs"
	"github.com/vaultswap/ledger/x/system"
	"github.com/vaultswap/ledger/x/token"
	"github.com/vaultswap/ledger/x/utils"
)

// Name is returned by the ABCI Info call.
const Name = "offerd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// fees, logging, and recovery. Metrics are collected only when a
// registerer is given.
func Chain(authFn x.Authenticator, sys system.Controller, reg prometheus.Registerer) app.Decorators {
	var metrics *utils.Metrics
	if reg != nil {
		metrics = utils.NewMetrics(reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		system.NewFeeDecorator(authFn, sys),
		// on DeliverTx, bad tx will increment nonce and take fee
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all programs of the application.
func Router(authFn x.Authenticator, sys system.Controller) *app.Router {
	tokens := token.NewController(sys)

	r := app.NewRouter()
	sigs.RegisterRoutes(r, authFn)
	system.RegisterRoutes(r, authFn, sys)
	token.RegisterRoutes(r, authFn, tokens)
	escrow.RegisterRoutes(r, authFn, escrow.NewController(escrow.NewBucket(), sys, tokens))
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/auth", "/accounts", "/mints", "/tokens" and
// "/offers"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		system.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all programs. The system
// program goes first, as the token program credits rent deposits from its
// configuration.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		system.Initializer{},
		token.Initializer{},
		escrow.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) ledger.Handler {
	authFn := Authenticator()
	sys := system.NewController(system.NewBucket())
	return Chain(authFn, sys, reg).WithHandler(Router(authFn, sys))
}

// Options configure the application created by GenerateApp.
type Options struct {
	// Home is the directory the database is stored in. Empty value
	// creates an in-memory database.
	Home   string
	Logger log.Logger
	Debug  bool
	// Registerer if set collects transaction metrics.
	Registerer prometheus.Registerer
}

// GenerateApp creates the application with all programs registered.
func GenerateApp(opts Options) (app.BaseApp, error) {
	var dbPath string
	if opts.Home != "" {
		dbPath = filepath.Join(opts.Home, "offerd.db")
	}
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	return Application(kv, opts)
}

// Application constructs the ABCI application on top of given store.
func Application(kv ledger.CommitKVStore, opts Options) (app.BaseApp, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	store, err := app.NewStoreApp(Name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "store app")
	}
	store = store.WithInit(Initializers()).WithLogger(logger)
	return app.NewBaseApp(store, TxDecoder, Stack(opts.Registerer), opts.Debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
