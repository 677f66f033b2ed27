package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury/errors"
)

// Counter is a minimal model used by the tests of this package.
type Counter struct {
	Count int64    `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Owner []byte   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Tags  []string `protobuf:"bytes,3,rep,name=tags,proto3" json:"tags,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Field("Count", errors.ErrInput, "negative")
	}
	return nil
}

// Other is a model of a different type than Counter.
type Other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *Other) Reset()         { *m = Other{} }
func (m *Other) String() string { return proto.CompactTextString(m) }
func (*Other) ProtoMessage()    {}

func (m *Other) Validate() error { return nil }
