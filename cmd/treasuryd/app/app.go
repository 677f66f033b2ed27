/*
Package app links together all the various components to construct the
treasury service.
*/
package app

import (
	"os"
	"path/filepath"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/app"
	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/iov-one/treasury/store/bolt"
	"github.com/iov-one/treasury/store/iavl"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/sigs"
	"github.com/iov-one/treasury/x/vault"
	"github.com/iov-one/treasury/x/withdrawal"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		// executing an approved withdrawal needs no signature
		sigs.NewDecorator().AllowMissingSigs(),
		app.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all treasury handlers.
func Router(auth x.Authenticator, gw cash.Gateway) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, gw)
	vault.RegisterRoutes(r, auth)
	withdrawal.RegisterRoutes(r, auth, gw)
	return r
}

// Stack wires up a standard router with a standard decorator chain.
func Stack() treasury.Handler {
	auth := Authenticator()
	gw := cash.NewController(cash.NewBucket())
	return Chain().WithHandler(Router(auth, gw))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() treasury.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		vault.Initializer{},
	)
}

// Supported store backends.
const (
	BackendMemory = "memory"
	BackendIavl   = "iavl"
	BackendBolt   = "bolt"
)

// OpenStore returns the store of given backend kept in the home directory,
// together with a function releasing it.
func OpenStore(backend, home string) (treasury.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case BackendMemory:
		return store.MemStore(), noop, nil
	case BackendIavl, BackendBolt:
	default:
		return nil, nil, errors.Wrapf(errors.ErrInput, "unknown store backend %q", backend)
	}

	dir, err := filepath.Abs(filepath.Join(home, "data"))
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInput, "invalid home: %s", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrDatabase, "create %s: %s", dir, err)
	}

	if backend == BackendIavl {
		kv, err := iavl.NewCommitStore(dir, "treasury")
		if err != nil {
			return nil, nil, err
		}
		return kv, func() error { kv.Close(); return nil }, nil
	}
	kv, err := bolt.Open(filepath.Join(dir, "treasury.db"))
	if err != nil {
		return nil, nil, err
	}
	return kv, kv.Close, nil
}

// NewService returns a service processing all treasury operations on given
// store.
func NewService(kv treasury.KVStore, clock app.Clock, logger log.Logger) (*app.Service, error) {
	return app.NewService(store.NewGuarded(kv, store.DefaultAttempts), Stack(), clock, logger)
}

// SignTx sets the message and signs the transaction with all given keys.
// The nonce of each signer is read from the current state.
func SignTx(svc *app.Service, msg treasury.Msg, signers ...crypto.Signer) (*Tx, error) {
	if svc.ChainID() == "" {
		return nil, errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	tx := &Tx{}
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	err := svc.View(func(db treasury.ReadOnlyKVStore) error {
		for _, s := range signers {
			seq, err := sigs.NextNonce(db, s.PublicKey().Address())
			if err != nil {
				return err
			}
			sig, err := sigs.SignTx(s, tx, svc.ChainID(), seq)
			if err != nil {
				return errors.Wrap(err, "sign")
			}
			tx.Signatures = append(tx.Signatures, sig)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
