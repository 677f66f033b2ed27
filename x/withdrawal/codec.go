package withdrawal

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
)

// Go mirrors of codec.proto.

type Status int32

const (
	StatusInvalid  Status = 0
	StatusPending  Status = 1
	StatusApproved Status = 2
	StatusExecuted Status = 3
	// No operation produces this status.
	StatusRejected Status = 4
)

var Status_name = map[int32]string{
	0: "STATUS_INVALID",
	1: "STATUS_PENDING",
	2: "STATUS_APPROVED",
	3: "STATUS_EXECUTED",
	4: "STATUS_REJECTED",
}

var Status_value = map[string]int32{
	"STATUS_INVALID":  0,
	"STATUS_PENDING":  1,
	"STATUS_APPROVED": 2,
	"STATUS_EXECUTED": 3,
	"STATUS_REJECTED": 4,
}

func (x Status) String() string {
	return proto.EnumName(Status_name, int32(x))
}

type WithdrawalRequest struct {
	Metadata    *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID     []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Amount      uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Destination treasury.Address   `protobuf:"bytes,4,opt,name=destination,proto3,casttype=github.com/iov-one/treasury.Address" json:"destination,omitempty"`
	Requester   treasury.Address   `protobuf:"bytes,5,opt,name=requester,proto3,casttype=github.com/iov-one/treasury.Address" json:"requester,omitempty"`
	Reason      string             `protobuf:"bytes,6,opt,name=reason,proto3" json:"reason,omitempty"`
	Approvals   []treasury.Address `protobuf:"bytes,7,rep,name=approvals,proto3,casttype=github.com/iov-one/treasury.Address" json:"approvals,omitempty"`
	Status      Status             `protobuf:"varint,8,opt,name=status,proto3,enum=withdrawal.Status" json:"status,omitempty"`
	CreatedAt   treasury.UnixTime  `protobuf:"varint,9,opt,name=created_at,json=createdAt,proto3,casttype=github.com/iov-one/treasury.UnixTime" json:"created_at,omitempty"`
	DelayUntil  treasury.UnixTime  `protobuf:"varint,10,opt,name=delay_until,json=delayUntil,proto3,casttype=github.com/iov-one/treasury.UnixTime" json:"delay_until,omitempty"`
	ExecutedAt  treasury.UnixTime  `protobuf:"varint,11,opt,name=executed_at,json=executedAt,proto3,casttype=github.com/iov-one/treasury.UnixTime" json:"executed_at,omitempty"`
}

func (m *WithdrawalRequest) Reset()         { *m = WithdrawalRequest{} }
func (m *WithdrawalRequest) String() string { return proto.CompactTextString(m) }
func (*WithdrawalRequest) ProtoMessage()    {}

type RequestMsg struct {
	Metadata    *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	VaultID     []byte             `protobuf:"bytes,2,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Requester   treasury.Address   `protobuf:"bytes,3,opt,name=requester,proto3,casttype=github.com/iov-one/treasury.Address" json:"requester,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Destination treasury.Address   `protobuf:"bytes,5,opt,name=destination,proto3,casttype=github.com/iov-one/treasury.Address" json:"destination,omitempty"`
	Reason      string             `protobuf:"bytes,6,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (m *RequestMsg) Reset()         { *m = RequestMsg{} }
func (m *RequestMsg) String() string { return proto.CompactTextString(m) }
func (*RequestMsg) ProtoMessage()    {}

type ApproveMsg struct {
	Metadata     *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WithdrawalID []byte             `protobuf:"bytes,2,opt,name=withdrawal_id,json=withdrawalId,proto3" json:"withdrawal_id,omitempty"`
	Approver     treasury.Address   `protobuf:"bytes,3,opt,name=approver,proto3,casttype=github.com/iov-one/treasury.Address" json:"approver,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

type ExecuteMsg struct {
	Metadata     *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WithdrawalID []byte             `protobuf:"bytes,2,opt,name=withdrawal_id,json=withdrawalId,proto3" json:"withdrawal_id,omitempty"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("withdrawal.Status", Status_name, Status_value)
	proto.RegisterType((*WithdrawalRequest)(nil), "withdrawal.WithdrawalRequest")
	proto.RegisterType((*RequestMsg)(nil), "withdrawal.RequestMsg")
	proto.RegisterType((*ApproveMsg)(nil), "withdrawal.ApproveMsg")
	proto.RegisterType((*ExecuteMsg)(nil), "withdrawal.ExecuteMsg")
}
