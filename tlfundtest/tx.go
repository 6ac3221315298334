package tlfundtest

import "github.com/iov-one/tlfund"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg tlfund.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ tlfund.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tlfund.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "tlfundtest.Tx" }
func (*Tx) ProtoMessage()     {}

// Msg represents a message that is routed by its path.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ tlfund.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "tlfundtest.Msg " + m.RoutePath }
func (*Msg) ProtoMessage()    {}
