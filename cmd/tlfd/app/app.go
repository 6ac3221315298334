/*
Package app wires the token and timelock extensions into a runnable ABCI
application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/app"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/orm"
	"github.com/iov-one/tlfund/store/iavl"
	"github.com/iov-one/tlfund/x"
	"github.com/iov-one/tlfund/x/sigs"
	"github.com/iov-one/tlfund/x/timelock"
	"github.com/iov-one/tlfund/x/token"
	"github.com/iov-one/tlfund/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// TokenControl returns the controller shared by all token users.
func TokenControl() token.Controller {
	return token.NewController()
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, a failed message does not roll back the nonce
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching token and timelock messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := TokenControl()
	token.RegisterRoutes(r, authFn, control)
	timelock.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a query router exposing "/", "/auth", the token
// buckets and the fund queries. Fund status is computed at the time
// returned by clock.
func QueryRouter(clock timelock.Clock) tlfund.QueryRouter {
	r := tlfund.NewQueryRouter()
	r.RegisterAll(
		orm.RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
	)
	timelock.RegisterQuery(r, TokenControl(), clock)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() tlfund.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h tlfund.Handler, tx tlfund.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}

	var store *app.StoreApp
	clock := func() (time.Time, error) { return store.BlockTime() }
	store = app.NewStoreApp(name, kv, QueryRouter(clock), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (tlfund.CommitKVStore, error) {
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
	return iavl.NewCommitStore(dir, name), nil
}
