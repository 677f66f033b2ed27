package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
)

// Go mirrors of codec.proto.

type Vault struct {
	Metadata                 *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner                    treasury.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/treasury.Address" json:"owner,omitempty"`
	Name                     string             `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	Approvers                []treasury.Address `protobuf:"bytes,4,rep,name=approvers,proto3,casttype=github.com/iov-one/treasury.Address" json:"approvers,omitempty"`
	Staff                    []treasury.Address `protobuf:"bytes,5,rep,name=staff,proto3,casttype=github.com/iov-one/treasury.Address" json:"staff,omitempty"`
	ApprovalThreshold        uint32             `protobuf:"varint,6,opt,name=approval_threshold,json=approvalThreshold,proto3" json:"approval_threshold,omitempty"`
	DailyLimit               uint64             `protobuf:"varint,7,opt,name=daily_limit,json=dailyLimit,proto3" json:"daily_limit,omitempty"`
	TxLimit                  uint64             `protobuf:"varint,8,opt,name=tx_limit,json=txLimit,proto3" json:"tx_limit,omitempty"`
	LargeWithdrawalThreshold uint64             `protobuf:"varint,9,opt,name=large_withdrawal_threshold,json=largeWithdrawalThreshold,proto3" json:"large_withdrawal_threshold,omitempty"`
	DelayHours               uint64             `protobuf:"varint,10,opt,name=delay_hours,json=delayHours,proto3" json:"delay_hours,omitempty"`
	Frozen                   bool               `protobuf:"varint,11,opt,name=frozen,proto3" json:"frozen,omitempty"`
	WithdrawalCount          uint64             `protobuf:"varint,12,opt,name=withdrawal_count,json=withdrawalCount,proto3" json:"withdrawal_count,omitempty"`
	CreatedAt                treasury.UnixTime  `protobuf:"varint,13,opt,name=created_at,json=createdAt,proto3,casttype=github.com/iov-one/treasury.UnixTime" json:"created_at,omitempty"`
	Address                  treasury.Address   `protobuf:"bytes,14,opt,name=address,proto3,casttype=github.com/iov-one/treasury.Address" json:"address,omitempty"`
}

func (m *Vault) Reset()         { *m = Vault{} }
func (m *Vault) String() string { return proto.CompactTextString(m) }
func (*Vault) ProtoMessage()    {}

func (m *Vault) GetOwner() treasury.Address {
	if m != nil {
		return m.Owner
	}
	return nil
}

func (m *Vault) GetApprovers() []treasury.Address {
	if m != nil {
		return m.Approvers
	}
	return nil
}

func (m *Vault) GetStaff() []treasury.Address {
	if m != nil {
		return m.Staff
	}
	return nil
}

type CreateMsg struct {
	Metadata                 *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner                    treasury.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/treasury.Address" json:"owner,omitempty"`
	Name                     string             `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	ApprovalThreshold        uint32             `protobuf:"varint,4,opt,name=approval_threshold,json=approvalThreshold,proto3" json:"approval_threshold,omitempty"`
	DailyLimit               uint64             `protobuf:"varint,5,opt,name=daily_limit,json=dailyLimit,proto3" json:"daily_limit,omitempty"`
	TxLimit                  uint64             `protobuf:"varint,6,opt,name=tx_limit,json=txLimit,proto3" json:"tx_limit,omitempty"`
	LargeWithdrawalThreshold uint64             `protobuf:"varint,7,opt,name=large_withdrawal_threshold,json=largeWithdrawalThreshold,proto3" json:"large_withdrawal_threshold,omitempty"`
	DelayHours               uint64             `protobuf:"varint,8,opt,name=delay_hours,json=delayHours,proto3" json:"delay_hours,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

type AddApproverMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Approver treasury.Address   `protobuf:"bytes,3,opt,name=approver,proto3,casttype=github.com/iov-one/treasury.Address" json:"approver,omitempty"`
}

func (m *AddApproverMsg) Reset()         { *m = AddApproverMsg{} }
func (m *AddApproverMsg) String() string { return proto.CompactTextString(m) }
func (*AddApproverMsg) ProtoMessage()    {}

type RemoveApproverMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Approver treasury.Address   `protobuf:"bytes,3,opt,name=approver,proto3,casttype=github.com/iov-one/treasury.Address" json:"approver,omitempty"`
}

func (m *RemoveApproverMsg) Reset()         { *m = RemoveApproverMsg{} }
func (m *RemoveApproverMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveApproverMsg) ProtoMessage()    {}

type AddStaffMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Staff    treasury.Address   `protobuf:"bytes,3,opt,name=staff,proto3,casttype=github.com/iov-one/treasury.Address" json:"staff,omitempty"`
}

func (m *AddStaffMsg) Reset()         { *m = AddStaffMsg{} }
func (m *AddStaffMsg) String() string { return proto.CompactTextString(m) }
func (*AddStaffMsg) ProtoMessage()    {}

type RemoveStaffMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Staff    treasury.Address   `protobuf:"bytes,3,opt,name=staff,proto3,casttype=github.com/iov-one/treasury.Address" json:"staff,omitempty"`
}

func (m *RemoveStaffMsg) Reset()         { *m = RemoveStaffMsg{} }
func (m *RemoveStaffMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveStaffMsg) ProtoMessage()    {}

type FreezeMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
}

func (m *FreezeMsg) Reset()         { *m = FreezeMsg{} }
func (m *FreezeMsg) String() string { return proto.CompactTextString(m) }
func (*FreezeMsg) ProtoMessage()    {}

type UnfreezeMsg struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID  []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
}

func (m *UnfreezeMsg) Reset()         { *m = UnfreezeMsg{} }
func (m *UnfreezeMsg) String() string { return proto.CompactTextString(m) }
func (*UnfreezeMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Vault)(nil), "vault.Vault")
	proto.RegisterType((*CreateMsg)(nil), "vault.CreateMsg")
	proto.RegisterType((*AddApproverMsg)(nil), "vault.AddApproverMsg")
	proto.RegisterType((*RemoveApproverMsg)(nil), "vault.RemoveApproverMsg")
	proto.RegisterType((*AddStaffMsg)(nil), "vault.AddStaffMsg")
	proto.RegisterType((*RemoveStaffMsg)(nil), "vault.RemoveStaffMsg")
	proto.RegisterType((*FreezeMsg)(nil), "vault.FreezeMsg")
	proto.RegisterType((*UnfreezeMsg)(nil), "vault.UnfreezeMsg")
}
