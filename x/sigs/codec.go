package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury"
)

// Go mirrors of codec.proto.

type UserData struct {
	Metadata *treasury.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Sequence int64              `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	PubKey   []byte             `protobuf:"bytes,3,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	PubKey    []byte `protobuf:"bytes,2,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

func init() {
	proto.RegisterType((*UserData)(nil), "sigs.UserData")
	proto.RegisterType((*StdSignature)(nil), "sigs.StdSignature")
}
