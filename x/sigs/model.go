package sigs

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/crypto"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
)

// BucketName is where we store the signers state.
const BucketName = "sigs"

// maxSequenceValue is the greatest nonce a client can safely represent
// (Number.MAX_SAFE_INTEGER).
const maxSequenceValue = (1 << 53) - 1

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && len(u.PubKey) == 0 {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs PubKey"))
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns a bucket of signer states, keyed by the signer address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the state of the signer with given public key. A signer
// that was never seen before starts with the zero sequence.
func loadUser(db treasury.ReadOnlyKVStore, b orm.ModelBucket, pub *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pub.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &treasury.Metadata{Schema: 1},
			PubKey:   pub.Bytes(),
		}, nil
	default:
		return nil, err
	}
}

// NextNonce returns the next numeric nonce value that should be used during
// a transaction signing by given signer.
func NextNonce(db treasury.ReadOnlyKVStore, signer treasury.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		// Nonce counting starts with zero.
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
