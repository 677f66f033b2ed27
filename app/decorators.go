package app

import (
	"time"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Recovery is a decorator to recover from panics in handlers, so we can
// return them as errors.
type Recovery struct{}

var _ treasury.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (_ *treasury.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (_ *treasury.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// Logging is a decorator to log operations as they pass through.
type Logging struct{}

var _ treasury.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (Logging) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger.
func logDuration(ctx treasury.Context, tx treasury.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := treasury.GetLogger(ctx).With(
		"path", treasury.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.With("err", err, "class", string(errors.ClassOf(err))).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

// Savepoint will isolate all data inside of the call, and commit or
// rollback to the savepoint depending on the error.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ treasury.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator, but you must call
// OnCheck/OnDeliver so it will be triggered.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	cstore, ok := db.(treasury.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, db, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	cstore, ok := db.(treasury.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, db, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
