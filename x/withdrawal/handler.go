package withdrawal

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/orm"
	"github.com/iov-one/treasury/x"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/policy"
	"github.com/iov-one/treasury/x/vault"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r treasury.Registry, auth x.Authenticator, gw cash.Gateway) {
	bucket := NewBucket()
	vaults := vault.NewBucket()
	r.Handle(&RequestMsg{}, RequestHandler{auth: auth, vaults: vaults, bucket: bucket})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, vaults: vaults, bucket: bucket})
	r.Handle(&ExecuteMsg{}, ExecuteHandler{vaults: vaults, bucket: bucket, gw: gw})
}

// RequestHandler creates a pending withdrawal request.
type RequestHandler struct {
	auth   x.Authenticator
	vaults orm.ModelBucket
	bucket orm.ModelBucket
}

var _ treasury.Handler = RequestHandler{}

func (h RequestHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

// Deliver stores the request under the current withdrawal count of the
// vault and increments that count. The key of the request is returned as
// the result data.
func (h RequestHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, v, requester, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	now := treasury.Now(ctx)
	w := &WithdrawalRequest{
		Metadata:    &treasury.Metadata{Schema: 1},
		VaultID:     msg.VaultID,
		Amount:      msg.Amount,
		Destination: msg.Destination,
		Requester:   requester,
		Reason:      msg.Reason,
		Status:      StatusPending,
		CreatedAt:   now,
	}
	if msg.Amount >= v.LargeWithdrawalThreshold {
		if w.DelayUntil, err = now.AddHours(v.DelayHours); err != nil {
			return nil, errors.Wrap(err, "delay")
		}
	}

	key := Key(msg.VaultID, v.WithdrawalCount)
	v.WithdrawalCount++
	if err := h.vaults.Put(db, msg.VaultID, v); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	if err := h.bucket.Put(db, key, w); err != nil {
		return nil, errors.Wrap(err, "cannot store withdrawal")
	}
	return &treasury.DeliverResult{Data: key}, nil
}

// validate returns the message, the vault and the requester. Rules are
// checked in order: the requester must be staff, the vault must not be
// frozen, the amount must be positive and within the transaction limit.
func (h RequestHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*RequestMsg, *vault.Vault, treasury.Address, error) {
	var msg RequestMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	v, err := vault.Load(db, h.vaults, msg.VaultID)
	if err != nil {
		return nil, nil, nil, err
	}

	requester := msg.Requester
	if requester == nil {
		requester = x.AnyAddress(ctx, h.auth, v.Staff)
	} else if !h.auth.HasAddress(ctx, requester) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "requester signature missing")
	}
	if !policy.CanRequest(v, requester) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "requester is not staff")
	}
	if v.Frozen {
		return nil, nil, nil, errors.Wrapf(errors.ErrVaultFrozen, "vault %q", v.Name)
	}
	if msg.Amount == 0 {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidLimit, "amount must be positive")
	}
	if msg.Amount > v.TxLimit {
		return nil, nil, nil, errors.Wrapf(errors.ErrExceedsLimit, "%d above limit of %d", msg.Amount, v.TxLimit)
	}
	return &msg, v, requester, nil
}

// ApproveHandler records an approval of a pending request.
type ApproveHandler struct {
	auth   x.Authenticator
	vaults orm.ModelBucket
	bucket orm.ModelBucket
}

var _ treasury.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

// Deliver stores the approval. The request becomes approved once the number
// of approvals reaches the current threshold of the vault.
func (h ApproveHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Put(db, msg.WithdrawalID, w); err != nil {
		return nil, errors.Wrap(err, "cannot store withdrawal")
	}
	return &treasury.DeliverResult{Data: msg.WithdrawalID, Log: w.Status.String()}, nil
}

// validate returns the withdrawal with the approval already applied.
func (h ApproveHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*ApproveMsg, *WithdrawalRequest, error) {
	var msg ApproveMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := Load(db, h.bucket, msg.WithdrawalID)
	if err != nil {
		return nil, nil, err
	}
	v, err := vault.Load(db, h.vaults, w.VaultID)
	if err != nil {
		return nil, nil, err
	}

	approver := msg.Approver
	if approver == nil {
		approver = x.AnyAddress(ctx, h.auth, v.Approvers)
	} else if !h.auth.HasAddress(ctx, approver) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "approver signature missing")
	}
	if !policy.IsApprover(v, approver) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not an approver")
	}
	if w.Status != StatusPending {
		return nil, nil, errors.Wrapf(errors.ErrInvalidStatus, "withdrawal is %s", w.Status)
	}
	if hasApproved(w, approver) {
		return nil, nil, errors.Wrapf(errors.ErrAlreadyApproved, "%s", approver)
	}
	if !policy.CanApprove(v, w.Requester, approver) {
		return nil, nil, errors.Wrap(errors.ErrSelfApproval, "requester cannot approve")
	}
	if w.Approvals, err = approvalRoster.Add(w.Approvals, approver); err != nil {
		return nil, nil, err
	}
	if uint64(len(w.Approvals)) >= uint64(v.ApprovalThreshold) {
		w.Status = StatusApproved
	}
	return &msg, w, nil
}

func hasApproved(w *WithdrawalRequest, addr treasury.Address) bool {
	for _, a := range w.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// ExecuteHandler transfers the funds of an approved request. Anyone can
// execute a request, the funds always go to its destination.
type ExecuteHandler struct {
	vaults orm.ModelBucket
	bucket orm.ModelBucket
	gw     cash.Gateway
}

var _ treasury.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &treasury.CheckResult{}, nil
}

// Deliver moves the amount from the vault authority to the destination and
// marks the request as executed.
func (h ExecuteHandler) Deliver(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*treasury.DeliverResult, error) {
	msg, w, v, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.gw.Transfer(db, v.Address, w.Destination, w.Amount); err != nil {
		return nil, errors.Wrap(err, "transfer")
	}
	w.ExecutedAt = treasury.Now(ctx)
	w.Status = StatusExecuted
	if err := h.bucket.Put(db, msg.WithdrawalID, w); err != nil {
		return nil, errors.Wrap(err, "cannot store withdrawal")
	}
	return &treasury.DeliverResult{Data: msg.WithdrawalID}, nil
}

// validate checks in order that the request is approved, its delay passed
// and the vault holds enough funds.
func (h ExecuteHandler) validate(ctx treasury.Context, db treasury.KVStore, tx treasury.Tx) (*ExecuteMsg, *WithdrawalRequest, *vault.Vault, error) {
	var msg ExecuteMsg
	if err := treasury.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := Load(db, h.bucket, msg.WithdrawalID)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := vault.Load(db, h.vaults, w.VaultID)
	if err != nil {
		return nil, nil, nil, err
	}

	if w.Status != StatusApproved {
		return nil, nil, nil, errors.Wrapf(errors.ErrInvalidStatus, "withdrawal is %s", w.Status)
	}
	if !w.DelayUntil.IsZero() && !treasury.IsExpired(ctx, w.DelayUntil) {
		return nil, nil, nil, errors.Wrapf(errors.ErrDelayNotPassed, "delayed until %s", w.DelayUntil)
	}
	available, err := h.gw.Balance(db, v.Address)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "balance")
	}
	if available < w.Amount {
		return nil, nil, nil, errors.Wrapf(errors.ErrInsufficientBalance, "%d available, %d requested", available, w.Amount)
	}
	return &msg, w, v, nil
}
