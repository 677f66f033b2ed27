package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/sigs"
	"github.com/iov-one/treasury/x/vault"
	"github.com/iov-one/treasury/x/withdrawal"
)

// make sure tx fulfills all interfaces
var (
	_ treasury.Tx   = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(raw []byte) (treasury.Tx, error) {
	var tx Tx
	if err := proto.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode tx: %s", err)
	}
	return &tx, nil
}

// GetMsg returns the single message set on the transaction.
func (tx *Tx) GetMsg() (treasury.Msg, error) {
	var found []treasury.Msg
	add := func(set bool, m treasury.Msg) {
		if set {
			found = append(found, m)
		}
	}
	add(tx.CashSendMsg != nil, tx.CashSendMsg)
	add(tx.VaultCreateMsg != nil, tx.VaultCreateMsg)
	add(tx.VaultAddApproverMsg != nil, tx.VaultAddApproverMsg)
	add(tx.VaultRemoveApproverMsg != nil, tx.VaultRemoveApproverMsg)
	add(tx.VaultAddStaffMsg != nil, tx.VaultAddStaffMsg)
	add(tx.VaultRemoveStaffMsg != nil, tx.VaultRemoveStaffMsg)
	add(tx.VaultFreezeMsg != nil, tx.VaultFreezeMsg)
	add(tx.VaultUnfreezeMsg != nil, tx.VaultUnfreezeMsg)
	add(tx.WithdrawalRequestMsg != nil, tx.WithdrawalRequestMsg)
	add(tx.WithdrawalApproveMsg != nil, tx.WithdrawalApproveMsg)
	add(tx.WithdrawalExecuteMsg != nil, tx.WithdrawalExecuteMsg)

	switch len(found) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages", len(found))
	}
}

// SetMsg replaces the message of the transaction. Signatures are kept, so
// they must be created after the message is set.
func (tx *Tx) SetMsg(msg treasury.Msg) error {
	next := Tx{Signatures: tx.Signatures}
	switch m := msg.(type) {
	case *cash.SendMsg:
		next.CashSendMsg = m
	case *vault.CreateMsg:
		next.VaultCreateMsg = m
	case *vault.AddApproverMsg:
		next.VaultAddApproverMsg = m
	case *vault.RemoveApproverMsg:
		next.VaultRemoveApproverMsg = m
	case *vault.AddStaffMsg:
		next.VaultAddStaffMsg = m
	case *vault.RemoveStaffMsg:
		next.VaultRemoveStaffMsg = m
	case *vault.FreezeMsg:
		next.VaultFreezeMsg = m
	case *vault.UnfreezeMsg:
		next.VaultUnfreezeMsg = m
	case *withdrawal.RequestMsg:
		next.WithdrawalRequestMsg = m
	case *withdrawal.ApproveMsg:
		next.WithdrawalApproveMsg = m
	case *withdrawal.ExecuteMsg:
		next.WithdrawalExecuteMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	*tx = next
	return nil
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	raw, err := proto.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal: %s", err)
	}
	return raw, nil
}

