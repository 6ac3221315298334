package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/errors"
	"github.com/iov-one/tlfund/x/sigs"
	"github.com/iov-one/tlfund/x/timelock"
	"github.com/iov-one/tlfund/x/token"
)

// Tx contains the message and the signatures of its authors. Exactly one of
// the message fields must be set.
type Tx struct {
	Signatures       []*sigs.StdSignature    `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg          *token.SendMsg          `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	CreateAccountMsg *token.CreateAccountMsg `protobuf:"bytes,3,opt,name=create_account_msg,json=createAccountMsg,proto3" json:"create_account_msg,omitempty"`
	CreateFundMsg    *timelock.CreateFundMsg `protobuf:"bytes,4,opt,name=create_fund_msg,json=createFundMsg,proto3" json:"create_fund_msg,omitempty"`
	RedeemMsg        *timelock.RedeemMsg     `protobuf:"bytes,5,opt,name=redeem_msg,json=redeemMsg,proto3" json:"redeem_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ tlfund.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (tlfund.Tx, error) {
	tx := new(Tx)
	if err := tlfund.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(err, "cannot decode transaction")
	}
	return tx, nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (tlfund.Msg, error) {
	return tlfund.ExtractMsgFromSum(tx)
}

// GetSignatures returns the signatures of the transaction authors.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are never part of the
// signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return tlfund.Marshal(&unsigned)
}
