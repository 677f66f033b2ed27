package treasury

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is the context all handlers run with. It is a plain
// context.Context, extensions add their own keys to it.
//
// There exist two functions for every value we support in the context:
//
//   WithXYZ(Context, T) Context
//   GetXYZ(Context) (val T, ok bool)
//
// WithXYZ panics if the value was previously set to avoid lower-level
// modules overwriting the value.
type Context = context.Context

type contextKey int

const (
	contextKeyBlockTime contextKey = iota
	contextKeyLogger
	contextKeyOperation
	contextKeyChainID
)

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithBlockTime sets the "now" of the operation. All time dependent rules
// (delays, creation timestamps) use this value instead of the wall clock.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := BlockTime(ctx); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t.UTC())
}

// BlockTime returns the time set for the current operation.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return t, ok
}

// Now returns the current operation time as UnixTime. It panics if the time
// was not set, which is always a wiring mistake.
func Now(ctx Context) UnixTime {
	t, ok := BlockTime(ctx)
	if !ok {
		panic("block time not present in the context")
	}
	return AsUnixTime(t)
}

// IsExpired returns true if given time is in the past as compared to the
// "now" of the operation. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
func IsExpired(ctx Context, t UnixTime) bool {
	return t <= Now(ctx)
}

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithOperationID tags the context with an identifier of the operation
// being delivered.
func WithOperationID(ctx Context, id string) Context {
	if _, ok := GetOperationID(ctx); ok {
		panic("operation id already set")
	}
	return context.WithValue(ctx, contextKeyOperation, id)
}

// GetOperationID returns the identifier of the operation being delivered.
func GetOperationID(ctx Context) (string, bool) {
	id, ok := ctx.Value(contextKeyOperation).(string)
	return id, ok
}

var validChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID returns true if the chain id is 6 to 20 characters of
// letters, digits, dash or underscore.
func IsValidChainID(chainID string) bool {
	return validChainID.MatchString(chainID)
}

// WithChainID sets the identifier of the ledger instance. Signatures are
// bound to it so that a transaction cannot be replayed on another ledger.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id set in the context, or an empty string.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}
