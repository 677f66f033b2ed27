package treasurytest

import (
	"context"
	"fmt"

	"github.com/iov-one/treasury"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Both Signer and
// Signers are always considered.
type Auth struct {
	// Signer is a convenience attribute when authenticating a single
	// signer.
	Signer treasury.Condition

	// Signers represents an authentication of multiple signers.
	Signers []treasury.Condition
}

func (a *Auth) GetConditions(treasury.Context) []treasury.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx treasury.Context, permissions ...treasury.Condition) treasury.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx treasury.Context) []treasury.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]treasury.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []treasury.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
