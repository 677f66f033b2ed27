package treasury

import (
	"github.com/gogo/protobuf/proto"
)

// Go mirrors of codec.proto. Marshalling is done by the protobuf runtime
// using the field tags.

type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

func (m *Metadata) GetSchema() uint32 {
	if m != nil {
		return m.Schema
	}
	return 0
}

func init() {
	proto.RegisterType((*Metadata)(nil), "treasury.Metadata")
}
