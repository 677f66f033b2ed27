package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Clock provides the time of an operation.
type Clock interface {
	Now() time.Time
}

// ClockFunc is a function implementing the Clock interface.
type ClockFunc func() time.Time

// Now returns the result of the function call.
func (fn ClockFunc) Now() time.Time { return fn() }

// SystemClock returns the wall clock time.
var SystemClock Clock = ClockFunc(time.Now)

// Service processes operations against a single store. Each delivered
// operation runs in isolation and is either applied as a whole or not at
// all. Any number of operations can be processed at the same time.
type Service struct {
	db      *store.Guarded
	handler treasury.Handler
	clock   Clock
	logger  log.Logger
	chainID string
}

// NewService returns a service processing operations with given handler.
// The chain id is read from the store if the genesis was already loaded.
// A nil clock means SystemClock and a nil logger discards all output.
func NewService(db *store.Guarded, handler treasury.Handler, clock Clock, logger log.Logger) (*Service, error) {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Service{
		db:      db,
		handler: handler,
		clock:   clock,
		logger:  logger,
	}
	err := db.View(func(kv treasury.ReadOnlyKVStore) error {
		var err error
		s.chainID, err = loadChainID(kv)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	return s, nil
}

// ChainID returns the identifier set by the genesis, or an empty string if
// the genesis was not loaded yet.
func (s *Service) ChainID() string {
	return s.chainID
}

// InitChain stores the chain id and loads the initial state of all
// extensions. It can be called only once for a store.
func (s *Service) InitChain(gen Genesis, init treasury.Initializer) error {
	if err := gen.Validate(); err != nil {
		return err
	}
	err := s.db.Update(func(kv treasury.KVStore) error {
		if err := saveChainID(kv, gen.ChainID); err != nil {
			return err
		}
		return init.FromGenesis(gen.AppState, kv)
	})
	if err != nil {
		return errors.Wrap(err, "init chain")
	}
	s.chainID = gen.ChainID
	s.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Check runs all validations of the operation without persisting anything.
func (s *Service) Check(ctx context.Context, tx treasury.Tx) (*treasury.CheckResult, error) {
	ctx, err := s.context(ctx)
	if err != nil {
		return nil, err
	}
	var res *treasury.CheckResult
	err = s.db.Check(func(kv treasury.KVStore) error {
		var err error
		res, err = s.handler.Check(ctx, kv, tx)
		return err
	})
	return res, err
}

// Deliver executes the operation and atomically persists its result.
func (s *Service) Deliver(ctx context.Context, tx treasury.Tx) (*treasury.DeliverResult, error) {
	ctx, err := s.context(ctx)
	if err != nil {
		return nil, err
	}
	var res *treasury.DeliverResult
	err = s.db.Update(func(kv treasury.KVStore) error {
		var err error
		res, err = s.handler.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// View gives read access to the current state.
func (s *Service) View(fn func(db treasury.ReadOnlyKVStore) error) error {
	return s.db.View(fn)
}

// context prepares the context of a single operation. Retries of the same
// operation share its time and identifier.
func (s *Service) context(ctx context.Context) (treasury.Context, error) {
	if s.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	id := uuid.New().String()
	ctx = treasury.WithBlockTime(ctx, s.clock.Now())
	ctx = treasury.WithChainID(ctx, s.chainID)
	ctx = treasury.WithOperationID(ctx, id)
	ctx = treasury.WithLogger(ctx, s.logger.With("operation", id))
	return ctx, nil
}
