package x

import (
	"github.com/iov-one/treasury"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. It is passed into the constructor of handlers, so that
// the authentication system can be replaced without touching them.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(treasury.Context) []treasury.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(treasury.Context, treasury.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators. A
// condition provided by more than one of them is returned once.
func (m MultiAuth) GetConditions(ctx treasury.Context) []treasury.Condition {
	var res []treasury.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx treasury.Context, addr treasury.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx treasury.Context, auth Authenticator) []treasury.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]treasury.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx treasury.Context, auth Authenticator) treasury.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx treasury.Context, auth Authenticator, required []treasury.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// AnyAddress returns the first of given addresses that is authenticated in
// the context, or nil if none is.
func AnyAddress(ctx treasury.Context, auth Authenticator, candidates []treasury.Address) treasury.Address {
	for _, c := range candidates {
		if auth.HasAddress(ctx, c) {
			return c
		}
	}
	return nil
}

func hasCondition(conds []treasury.Condition, c treasury.Condition) bool {
	for _, p := range conds {
		if p.Equals(c) {
			return true
		}
	}
	return false
}
