package treasury

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/treasury/errors"
)

type testMsg struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *testMsg) Reset()         { *m = testMsg{} }
func (m *testMsg) String() string { return proto.CompactTextString(m) }
func (*testMsg) ProtoMessage()    {}
func (*testMsg) Path() string     { return "test/msg" }

func (m *testMsg) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

type otherMsg struct {
	testMsg
}

func (*otherMsg) Path() string { return "test/other" }

type testTx struct {
	msg Msg
	err error
}

func (tx *testTx) Reset()               {}
func (tx *testTx) String() string       { return "testTx" }
func (*testTx) ProtoMessage()           {}
func (tx *testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx       Tx
		dest     interface{}
		wantErr  *errors.Error
		wantName string
	}{
		"message is copied": {
			tx:       &testTx{msg: &testMsg{Name: "payroll"}},
			dest:     &testMsg{},
			wantName: "payroll",
		},
		"invalid message": {
			tx:      &testTx{msg: &testMsg{}},
			dest:    &testMsg{},
			wantErr: errors.ErrEmpty,
		},
		"missing message": {
			tx:      &testTx{},
			dest:    &testMsg{},
			wantErr: errors.ErrMsg,
		},
		"message error": {
			tx:      &testTx{err: errors.ErrInput},
			dest:    &testMsg{},
			wantErr: errors.ErrInput,
		},
		"wrong destination type": {
			tx:      &testTx{msg: &otherMsg{testMsg{Name: "x"}}},
			dest:    &testMsg{},
			wantErr: errors.ErrType,
		},
		"destination not a pointer": {
			tx:      &testTx{msg: &testMsg{Name: "x"}},
			dest:    testMsg{},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				if got := tc.dest.(*testMsg).Name; got != tc.wantName {
					t.Fatalf("want %q, got %q", tc.wantName, got)
				}
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if p := GetPath(&testTx{msg: &testMsg{}}); p != "test/msg" {
		t.Fatalf("unexpected path %q", p)
	}
	if p := GetPath(&testTx{}); p != "(missing)" {
		t.Fatalf("unexpected path %q", p)
	}
}

func TestMetadataValidate(t *testing.T) {
	var missing *Metadata
	if err := missing.Validate(); !errors.ErrMetadata.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Metadata{}).Validate(); !errors.ErrMetadata.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Metadata{Schema: 1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadOptions(t *testing.T) {
	opts := Options{"cash": []byte(`{"limit": 5}`), "broken": []byte(`{`)}

	var dest struct{ Limit int }
	if err := opts.ReadOptions("cash", &dest); err != nil || dest.Limit != 5 {
		t.Fatalf("unexpected result %v, %d", err, dest.Limit)
	}
	if err := opts.ReadOptions("missing", &dest); err != nil {
		t.Fatalf("missing key must be ignored: %v", err)
	}
	if err := opts.ReadOptions("broken", &dest); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
