package treasurytest

import "github.com/iov-one/treasury"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg treasury.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ treasury.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (treasury.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "treasurytest.Tx" }
func (*Tx) ProtoMessage()     {}

// Msg represents a message routed by its path only.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ treasury.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "treasurytest.Msg " + m.RoutePath }
func (*Msg) ProtoMessage()    {}
