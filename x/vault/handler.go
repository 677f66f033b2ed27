package vault

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/policy"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r treasury.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket})
	r.Handle(&AddApproverMsg{}, AddApproverHandler{auth: auth, bucket: bucket})
	r.Handle(&RemoveApproverMsg{}, RemoveApproverHandler{auth: auth, bucket: bucket})
	r.Handle(&AddStaffMsg{}, AddStaffHandler{auth: auth, bucket: bucket})
	r.Handle(&RemoveStaffMsg{}, RemoveStaffHandler{auth: auth, bucket: bucket})
	r.Handle(&FreezeMsg{}, FreezeHandler{auth: auth, bucket: bucket})
	r.Handle(&UnfreezeMsg{}, UnfreezeHandler{auth: auth, bucket: bucket})
}

// CreateHandler registers a new vault owned by the signer.
type CreateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

// Deliver stores a new vault with empty approver and staff lists. The
// primary key of the vault is returned as the result data.
func (h CreateHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	key := Key(owner, msg.Name)
	vault := &Vault{
		Metadata:                 &treasury.Metadata{Schema: 1},
		Owner:                    owner,
		Name:                     msg.Name,
		ApprovalThreshold:        msg.ApprovalThreshold,
		DailyLimit:               msg.DailyLimit,
		TxLimit:                  msg.TxLimit,
		LargeWithdrawalThreshold: msg.LargeWithdrawalThreshold,
		DelayHours:               msg.DelayHours,
		CreatedAt:                treasury.Now(ctx),
		Address:                  Authority(key).Address(),
	}
	if err := h.bucket.Put(db, key, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: key, Log: "vault created"}, nil
}

// validate returns the message and the owner of the vault to be created.
func (h CreateHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*CreateMsg, treasury.Address, error) {
	var msg CreateMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	// Owner must authorize this (if not set, defaults to MainSigner).
	owner := msg.Owner
	if owner == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		owner = signer.Address()
	} else if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}

	switch err := h.bucket.Has(db, Key(owner, msg.Name)); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "vault %q", msg.Name)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, owner, nil
}

// loadManaged returns the vault with given key if the owner signed the
// transaction.
func loadManaged(ctx treasury.Context, db treasury.ReadOnlyKVStore, auth x.Authenticator, bucket orm.ModelBucket, key []byte) (*Vault, error) {
	vault, err := Load(db, bucket, key)
	if err != nil {
		return nil, err
	}
	if !policy.CanManage(vault, x.AnyAddress(ctx, auth, []treasury.Address{vault.Owner})) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return vault, nil
}

// AddApproverHandler appends an approver to the vault.
type AddApproverHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = AddApproverHandler{}

func (h AddApproverHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h AddApproverHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.VaultID, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: msg.VaultID}, nil
}

// validate returns the vault with the approver already added.
func (h AddApproverHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*AddApproverMsg, *Vault, error) {
	var msg AddApproverMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	if vault.Approvers, err = approverRoster.Add(vault.Approvers, msg.Approver); err != nil {
		return nil, nil, err
	}
	return &msg, vault, nil
}

// RemoveApproverHandler removes an approver from the vault. The number of
// remaining approvers must stay above the approval threshold.
type RemoveApproverHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = RemoveApproverHandler{}

func (h RemoveApproverHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h RemoveApproverHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.VaultID, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: msg.VaultID}, nil
}

func (h RemoveApproverHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*RemoveApproverMsg, *Vault, error) {
	var msg RemoveApproverMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	approvers, err := approverRoster.Remove(vault.Approvers, msg.Approver)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(approvers)) <= uint64(vault.ApprovalThreshold) {
		return nil, nil, errors.Wrapf(errors.ErrInvalidThreshold,
			"%d approvers would remain, more than %d required", len(approvers), vault.ApprovalThreshold)
	}
	vault.Approvers = approvers
	return &msg, vault, nil
}

// AddStaffHandler appends a staff member to the vault.
type AddStaffHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = AddStaffHandler{}

func (h AddStaffHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h AddStaffHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.VaultID, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: msg.VaultID}, nil
}

func (h AddStaffHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*AddStaffMsg, *Vault, error) {
	var msg AddStaffMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	if vault.Staff, err = staffRoster.Add(vault.Staff, msg.Staff); err != nil {
		return nil, nil, err
	}
	return &msg, vault, nil
}

// RemoveStaffHandler removes a staff member from the vault. Withdrawals
// already requested by that member are not affected.
type RemoveStaffHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = RemoveStaffHandler{}

func (h RemoveStaffHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h RemoveStaffHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.VaultID, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: msg.VaultID}, nil
}

func (h RemoveStaffHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*RemoveStaffMsg, *Vault, error) {
	var msg RemoveStaffMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	if vault.Staff, err = staffRoster.Remove(vault.Staff, msg.Staff); err != nil {
		return nil, nil, err
	}
	return &msg, vault, nil
}

// FreezeHandler stops new withdrawal requests. Freezing a frozen vault
// succeeds without a change.
type FreezeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = FreezeHandler{}

func (h FreezeHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h FreezeHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return setFrozen(db, h.bucket, msg.VaultID, vault, true)
}

func (h FreezeHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*FreezeMsg, *Vault, error) {
	var msg FreezeMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, vault, nil
}

// UnfreezeHandler allows withdrawal requests again.
type UnfreezeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ treasury.Handler = UnfreezeHandler{}

func (h UnfreezeHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

func (h UnfreezeHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return setFrozen(db, h.bucket, msg.VaultID, vault, false)
}

func (h UnfreezeHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*UnfreezeMsg, *Vault, error) {
	var msg UnfreezeMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	vault, err := loadManaged(ctx, db, h.auth, h.bucket, msg.VaultID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, vault, nil
}

func setFrozen(db treasury.KVStore, bucket orm.ModelBucket, key []byte, vault *Vault, frozen bool) (*treasury.DeliverResult, error) {
	if vault.Frozen == frozen {
		return &treasury.DeliverResult{Data: key, Log: "unchanged"}, nil
	}
	vault.Frozen = frozen
	if err := bucket.Put(db, key, vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &treasury.DeliverResult{Data: key}, nil
}
