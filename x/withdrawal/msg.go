package withdrawal

import (
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/vault"
)

var (
	_ treasury.Msg = (*RequestMsg)(nil)
	_ treasury.Msg = (*ApproveMsg)(nil)
	_ treasury.Msg = (*ExecuteMsg)(nil)
)

func (RequestMsg) Path() string { return "withdrawal/request" }
func (ApproveMsg) Path() string { return "withdrawal/approve" }
func (ExecuteMsg) Path() string { return "withdrawal/execute" }

// Validate checks the message format only. The amount is checked against
// the vault, after the requester was authorized.
func (m *RequestMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "VaultID", vault.ValidateKey(m.VaultID))
	if m.Requester != nil {
		errs = errors.AppendField(errs, "Requester", m.Requester.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Reason", validateReason(m.Reason))
	return errs
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "WithdrawalID", validateKey(m.WithdrawalID))
	if m.Approver != nil {
		errs = errors.AppendField(errs, "Approver", m.Approver.Validate())
	}
	return errs
}

func (m *ExecuteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "WithdrawalID", validateKey(m.WithdrawalID))
	return errs
}

func validateKey(key []byte) error {
	if len(key) < 8 {
		return errors.Wrap(errors.ErrInput, "invalid withdrawal key")
	}
	return vault.ValidateKey(key[:len(key)-8])
}
