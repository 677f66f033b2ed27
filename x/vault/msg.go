package vault

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
)

var (
	_ treasury.Msg = (*CreateMsg)(nil)
	_ treasury.Msg = (*AddApproverMsg)(nil)
	_ treasury.Msg = (*RemoveApproverMsg)(nil)
	_ treasury.Msg = (*AddStaffMsg)(nil)
	_ treasury.Msg = (*RemoveStaffMsg)(nil)
	_ treasury.Msg = (*FreezeMsg)(nil)
	_ treasury.Msg = (*UnfreezeMsg)(nil)
)

func (CreateMsg) Path() string         { return "vault/create" }
func (AddApproverMsg) Path() string    { return "vault/add_approver" }
func (RemoveApproverMsg) Path() string { return "vault/remove_approver" }
func (AddStaffMsg) Path() string       { return "vault/add_staff" }
func (RemoveStaffMsg) Path() string    { return "vault/remove_staff" }
func (FreezeMsg) Path() string         { return "vault/freeze" }
func (UnfreezeMsg) Path() string       { return "vault/unfreeze" }

// Validate fails on the first broken rule. Name is checked before the
// threshold and the threshold before the limits, so that a client always
// gets the same error for the same message.
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Field("Metadata", err, "")
	}
	if m.Owner != nil {
		if err := m.Owner.Validate(); err != nil {
			return errors.Field("Owner", err, "")
		}
	}
	if err := validateName(m.Name); err != nil {
		return errors.Field("Name", err, "")
	}
	if m.ApprovalThreshold == 0 {
		return errors.Field("ApprovalThreshold", errors.ErrInvalidThreshold, "must be positive")
	}
	if err := validateLimit(m.DailyLimit); err != nil {
		return errors.Field("DailyLimit", err, "")
	}
	if err := validateLimit(m.TxLimit); err != nil {
		return errors.Field("TxLimit", err, "")
	}
	if err := validateLimit(m.LargeWithdrawalThreshold); err != nil {
		return errors.Field("LargeWithdrawalThreshold", err, "")
	}
	return nil
}

func (m *AddApproverMsg) Validate() error {
	return validateMemberMsg(m.Metadata, m.VaultID, "Approver", m.Approver)
}

func (m *RemoveApproverMsg) Validate() error {
	return validateMemberMsg(m.Metadata, m.VaultID, "Approver", m.Approver)
}

func (m *AddStaffMsg) Validate() error {
	return validateMemberMsg(m.Metadata, m.VaultID, "Staff", m.Staff)
}

func (m *RemoveStaffMsg) Validate() error {
	return validateMemberMsg(m.Metadata, m.VaultID, "Staff", m.Staff)
}

func (m *FreezeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "VaultID", ValidateKey(m.VaultID))
	return errs
}

func (m *UnfreezeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "VaultID", ValidateKey(m.VaultID))
	return errs
}

func validateMemberMsg(meta *treasury.Metadata, vaultID []byte, field string, member treasury.Address) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	errs = errors.AppendField(errs, "VaultID", ValidateKey(vaultID))
	errs = errors.AppendField(errs, field, member.Validate())
	return errs
}

// ValidateKey returns an error if given value cannot be a vault key.
func ValidateKey(key []byte) error {
	if len(key) <= treasury.AddressLength || len(key) > treasury.AddressLength+maxNameLength {
		return errors.Wrap(errors.ErrInput, "invalid vault key")
	}
	return nil
}
