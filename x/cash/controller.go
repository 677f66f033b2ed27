package cash

import (
	"math"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// Gateway moves funds between addresses. It is the only way other
// extensions can modify balances.
type Gateway interface {
	// Balance returns the funds held by given address. An address that
	// never received anything has zero balance.
	Balance(db treasury.ReadOnlyKVStore, addr treasury.Address) (uint64, error)

	// Transfer moves amount from src to dest. It fails without any change
	// if src does not hold enough funds.
	Transfer(db treasury.KVStore, src, dest treasury.Address, amount uint64) error

	// Issue creates amount out of thin air and adds it to dest.
	Issue(db treasury.KVStore, dest treasury.Address, amount uint64) error
}

// Controller is the wallet bucket backed Gateway.
type Controller struct {
	bucket orm.ModelBucket
}

var _ Gateway = Controller{}

// NewController returns a controller using given bucket. Pass NewBucket()
// unless you know what you are doing.
func NewController(bucket orm.ModelBucket) Controller {
	return Controller{bucket: bucket}
}

func (c Controller) Balance(db treasury.ReadOnlyKVStore, addr treasury.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (c Controller) Transfer(db treasury.KVStore, src, dest treasury.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%d available, %d requested", sender.Balance, amount)
	}
	// Sending to self is a no-op once the funds are verified.
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Balance -= amount
	recipient.Balance += amount
	if err := c.save(db, src, sender); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := c.save(db, dest, recipient); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

func (c Controller) Issue(db treasury.KVStore, dest treasury.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	w.Balance += amount
	return c.save(db, dest, w)
}

// load returns the wallet of given address, or an empty one.
func (c Controller) load(db treasury.ReadOnlyKVStore, addr treasury.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return NewWallet(0), nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// save stores the wallet. Empty wallets are removed.
func (c Controller) save(db treasury.KVStore, addr treasury.Address, w *Wallet) error {
	if w.Balance > 0 {
		return c.bucket.Put(db, addr, w)
	}
	err := c.bucket.Delete(db, addr)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
