package vault

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x/policy"
)

const (
	// BucketName is where vaults are stored.
	BucketName = "vault"

	maxNameLength = 50
)

var (
	_ orm.Model         = (*Vault)(nil)
	_ policy.Membership = (*Vault)(nil)
)

// Validate ensures the vault is valid. A threshold greater than the number
// of approvers is valid, approvers can be added later.
func (v *Vault) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", v.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", v.Owner.Validate())
	errs = errors.AppendField(errs, "Name", validateName(v.Name))
	errs = errors.AppendField(errs, "Approvers", approverRoster.Validate(v.Approvers))
	errs = errors.AppendField(errs, "Staff", staffRoster.Validate(v.Staff))
	if v.ApprovalThreshold == 0 {
		errs = errors.AppendField(errs, "ApprovalThreshold", errors.ErrInvalidThreshold)
	}
	errs = errors.AppendField(errs, "DailyLimit", validateLimit(v.DailyLimit))
	errs = errors.AppendField(errs, "TxLimit", validateLimit(v.TxLimit))
	errs = errors.AppendField(errs, "LargeWithdrawalThreshold", validateLimit(v.LargeWithdrawalThreshold))
	errs = errors.AppendField(errs, "CreatedAt", v.CreatedAt.Validate())
	errs = errors.AppendField(errs, "Address", v.Address.Validate())
	return errs
}

func validateName(name string) error {
	if n := len(name); n == 0 || n > maxNameLength {
		return errors.Wrapf(errors.ErrInvalidName, "must be 1 to %d bytes, got %d", maxNameLength, n)
	}
	return nil
}

func validateLimit(limit uint64) error {
	if limit == 0 {
		return errors.Wrap(errors.ErrInvalidLimit, "must be positive")
	}
	return nil
}

// Key returns the primary key of this vault.
func (v *Vault) Key() []byte {
	return Key(v.Owner, v.Name)
}

// Key returns the primary key of the vault with given owner and name. The
// owner address has a fixed length so the concatenation is unambiguous.
func Key(owner treasury.Address, name string) []byte {
	key := make([]byte, 0, len(owner)+len(name))
	key = append(key, owner...)
	return append(key, name...)
}

// Authority returns the condition that controls the funds of the vault with
// given key. It is never satisfied by a signature, only the withdrawal
// extension spends under it.
func Authority(key []byte) treasury.Condition {
	return treasury.NewCondition("vault", "authority", key)
}

// NewBucket returns a bucket of vaults, indexed by owner and by member.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Vault{},
		orm.WithNativeIndex("owner", ownerIndexer),
		orm.WithNativeIndex("member", memberIndexer),
	)
}

func asVault(m orm.Model) (*Vault, error) {
	v, ok := m.(*Vault)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return v, nil
}

func ownerIndexer(m orm.Model) ([][]byte, error) {
	v, err := asVault(m)
	if err != nil {
		return nil, err
	}
	return [][]byte{v.Owner}, nil
}

// memberIndexer indexes a vault under every address that holds any role
// in it.
func memberIndexer(m orm.Model) ([][]byte, error) {
	v, err := asVault(m)
	if err != nil {
		return nil, err
	}
	keys := [][]byte{v.Owner}
	for _, list := range [][]treasury.Address{v.Approvers, v.Staff} {
		for _, a := range list {
			if !containsKey(keys, a) {
				keys = append(keys, a)
			}
		}
	}
	return keys, nil
}

func containsKey(keys [][]byte, key treasury.Address) bool {
	for _, k := range keys {
		if key.Equals(k) {
			return true
		}
	}
	return false
}

// Load returns the vault stored under given key.
func Load(db treasury.ReadOnlyKVStore, bucket orm.ModelBucket, key []byte) (*Vault, error) {
	var v Vault
	if err := bucket.One(db, key, &v); err != nil {
		return nil, errors.Wrap(err, "cannot load vault")
	}
	return &v, nil
}
