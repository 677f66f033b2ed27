package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury/x/cash"
	"github.com/iov-one/treasury/x/sigs"
	"github.com/iov-one/treasury/x/vault"
	"github.com/iov-one/treasury/x/withdrawal"
)

// Go mirror of codec.proto.

type Tx struct {
	Signatures             []*sigs.StdSignature     `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CashSendMsg            *cash.SendMsg            `protobuf:"bytes,51,opt,name=cash_send_msg,json=cashSendMsg,proto3" json:"cash_send_msg,omitempty"`
	VaultCreateMsg         *vault.CreateMsg         `protobuf:"bytes,61,opt,name=vault_create_msg,json=vaultCreateMsg,proto3" json:"vault_create_msg,omitempty"`
	VaultAddApproverMsg    *vault.AddApproverMsg    `protobuf:"bytes,62,opt,name=vault_add_approver_msg,json=vaultAddApproverMsg,proto3" json:"vault_add_approver_msg,omitempty"`
	VaultRemoveApproverMsg *vault.RemoveApproverMsg `protobuf:"bytes,63,opt,name=vault_remove_approver_msg,json=vaultRemoveApproverMsg,proto3" json:"vault_remove_approver_msg,omitempty"`
	VaultAddStaffMsg       *vault.AddStaffMsg       `protobuf:"bytes,64,opt,name=vault_add_staff_msg,json=vaultAddStaffMsg,proto3" json:"vault_add_staff_msg,omitempty"`
	VaultRemoveStaffMsg    *vault.RemoveStaffMsg    `protobuf:"bytes,65,opt,name=vault_remove_staff_msg,json=vaultRemoveStaffMsg,proto3" json:"vault_remove_staff_msg,omitempty"`
	VaultFreezeMsg         *vault.FreezeMsg         `protobuf:"bytes,66,opt,name=vault_freeze_msg,json=vaultFreezeMsg,proto3" json:"vault_freeze_msg,omitempty"`
	VaultUnfreezeMsg       *vault.UnfreezeMsg       `protobuf:"bytes,67,opt,name=vault_unfreeze_msg,json=vaultUnfreezeMsg,proto3" json:"vault_unfreeze_msg,omitempty"`
	WithdrawalRequestMsg   *withdrawal.RequestMsg   `protobuf:"bytes,71,opt,name=withdrawal_request_msg,json=withdrawalRequestMsg,proto3" json:"withdrawal_request_msg,omitempty"`
	WithdrawalApproveMsg   *withdrawal.ApproveMsg   `protobuf:"bytes,72,opt,name=withdrawal_approve_msg,json=withdrawalApproveMsg,proto3" json:"withdrawal_approve_msg,omitempty"`
	WithdrawalExecuteMsg   *withdrawal.ExecuteMsg   `protobuf:"bytes,73,opt,name=withdrawal_execute_msg,json=withdrawalExecuteMsg,proto3" json:"withdrawal_execute_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

func (m *Tx) GetSignatures() []*sigs.StdSignature {
	if m != nil {
		return m.Signatures
	}
	return nil
}

func init() {
	proto.RegisterType((*Tx)(nil), "treasuryd.Tx")
}
