/*
Package sigs provides the authentication middleware that verifies the
signatures of a transaction and maintains nonces for replay protection.
*/
package sigs

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

// Decorator verifies the signatures and adds them to the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ treasury.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which appends
// the chain id before checking the signature, and requires at least one
// signature to be present.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs allows us to pass along items with no signatures.
// Execution of an approved withdrawal requires no particular signer.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Checker) (*treasury.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx, next treasury.Deliverer) (*treasury.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (treasury.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, stx, treasury.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
