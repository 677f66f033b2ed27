package sigs

import (
	"context"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx treasury.Context, signers []treasury.Condition) treasury.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context. May be empty.
func (a Authenticate) GetConditions(ctx treasury.Context) []treasury.Condition {
	val, _ := ctx.Value(contextKeySigners).([]treasury.Condition)
	return val
}

// HasAddress returns true if the address signed the current Context.
func (a Authenticate) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
