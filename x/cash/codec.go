package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
)

// Go mirrors of codec.proto.

type Wallet struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Balance  uint64             `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

type SendMsg struct {
	Metadata    *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      treasury.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/treasury.Address" json:"source,omitempty"`
	Destination treasury.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/treasury.Address" json:"destination,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string             `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Wallet)(nil), "cash.Wallet")
	proto.RegisterType((*SendMsg)(nil), "cash.SendMsg")
}
