package withdrawal

import (
	"encoding/binary"
	"strings"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x/vault"
)

const (
	// BucketName is where withdrawal requests are stored.
	BucketName = "withdrawal"

	maxReasonLength = 200
)

var _ orm.Model = (*WithdrawalRequest)(nil)

// approvalRoster bounds the approvals of a request the same way the
// approvers of a vault are bounded.
var approvalRoster = vault.Roster{
	Capacity:     vault.MaxApprovers,
	ErrFull:      errors.ErrMaxApprovers,
	ErrDuplicate: errors.ErrAlreadyApproved,
	ErrMissing:   errors.ErrNotFound,
}

// Validate ensures the withdrawal request is valid.
func (w *WithdrawalRequest) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "VaultID", vault.ValidateKey(w.VaultID))
	if w.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidLimit)
	}
	errs = errors.AppendField(errs, "Destination", w.Destination.Validate())
	errs = errors.AppendField(errs, "Requester", w.Requester.Validate())
	errs = errors.AppendField(errs, "Reason", validateReason(w.Reason))
	errs = errors.AppendField(errs, "Approvals", approvalRoster.Validate(w.Approvals))
	errs = errors.AppendField(errs, "Status", w.Status.Validate())
	errs = errors.AppendField(errs, "CreatedAt", w.CreatedAt.Validate())
	errs = errors.AppendField(errs, "DelayUntil", w.DelayUntil.Validate())
	errs = errors.AppendField(errs, "ExecutedAt", w.ExecutedAt.Validate())
	if executed := w.Status == StatusExecuted; executed == w.ExecutedAt.IsZero() {
		errs = errors.AppendField(errs, "ExecutedAt", errors.Wrap(errors.ErrState, "must be set exactly when executed"))
	}
	return errs
}

func validateReason(reason string) error {
	if len(reason) > maxReasonLength {
		return errors.Wrapf(errors.ErrInput, "longer than %d bytes", maxReasonLength)
	}
	return nil
}

// Validate returns an error if the status is not a known value.
func (s Status) Validate() error {
	if _, ok := Status_name[int32(s)]; !ok || s == StatusInvalid {
		return errors.Wrapf(errors.ErrState, "status %d", s)
	}
	return nil
}

// ParseStatus returns the status of given name. Both the full name and the
// short lower case form are accepted, for example STATUS_PENDING or pending.
func ParseStatus(name string) (Status, error) {
	name = strings.ToUpper(name)
	if !strings.HasPrefix(name, "STATUS_") {
		name = "STATUS_" + name
	}
	v, ok := Status_value[name]
	if !ok {
		return StatusInvalid, errors.Wrapf(errors.ErrInput, "unknown status %q", name)
	}
	return Status(v), nil
}

// Key returns the primary key of the withdrawal with given sequence.
func Key(vaultID []byte, seq uint64) []byte {
	key := make([]byte, len(vaultID)+8)
	copy(key, vaultID)
	binary.BigEndian.PutUint64(key[len(vaultID):], seq)
	return key
}

// Sequence returns the sequence part of a withdrawal key.
func Sequence(key []byte) (uint64, error) {
	if len(key) < 8 {
		return 0, errors.Wrap(errors.ErrInput, "invalid withdrawal key")
	}
	return binary.BigEndian.Uint64(key[len(key)-8:]), nil
}

// NewBucket returns a bucket of withdrawal requests indexed by vault and by
// vault and status.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &WithdrawalRequest{},
		orm.WithNativeIndex("vault", vaultIndexer),
		orm.WithNativeIndex("status", statusIndexer),
	)
}

func asWithdrawal(m orm.Model) (*WithdrawalRequest, error) {
	w, ok := m.(*WithdrawalRequest)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return w, nil
}

func vaultIndexer(m orm.Model) ([][]byte, error) {
	w, err := asWithdrawal(m)
	if err != nil {
		return nil, err
	}
	return [][]byte{w.VaultID}, nil
}

func statusIndexer(m orm.Model) ([][]byte, error) {
	w, err := asWithdrawal(m)
	if err != nil {
		return nil, err
	}
	return [][]byte{statusIndexValue(w.VaultID, w.Status)}, nil
}

func statusIndexValue(vaultID []byte, s Status) []byte {
	val := make([]byte, 0, len(vaultID)+1)
	val = append(val, vaultID...)
	return append(val, byte(s))
}

// Load returns the withdrawal request stored under given key.
func Load(db treasury.ReadOnlyKVStore, bucket orm.ModelBucket, key []byte) (*WithdrawalRequest, error) {
	var w WithdrawalRequest
	if err := bucket.One(db, key, &w); err != nil {
		return nil, errors.Wrap(err, "cannot load withdrawal")
	}
	return &w, nil
}
