package cash

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

var _ orm.Model = (*Wallet)(nil)

// Validate requires the metadata. Any balance is valid.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return nil
}

// NewWallet returns a wallet holding given balance.
func NewWallet(balance uint64) *Wallet {
	return &Wallet{
		Metadata: &treasury.Metadata{Schema: 1},
		Balance:  balance,
	}
}

// NewBucket returns a bucket of wallets keyed by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
