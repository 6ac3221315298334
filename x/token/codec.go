package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tlfund"
	"github.com/iov-one/tlfund/coin"
)

// Asset declares a fungible asset type. It is stored under its ticker.
type Asset struct {
	Metadata *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name     string           `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Decimals uint32           `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
}

func (m *Asset) Reset()         { *m = Asset{} }
func (m *Asset) String() string { return proto.CompactTextString(m) }
func (*Asset) ProtoMessage()    {}

// Account holds units of a single asset. Only the authority can move funds
// out of it.
type Account struct {
	Metadata  *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker    string           `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Authority tlfund.Address   `protobuf:"bytes,3,opt,name=authority,proto3,casttype=github.com/iov-one/tlfund.Address" json:"authority,omitempty"`
	Balance   uint64           `protobuf:"varint,4,opt,name=balance,proto3" json:"balance,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// SendMsg moves funds from the source account to the destination account.
type SendMsg struct {
	Metadata    *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      tlfund.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/iov-one/tlfund.Address" json:"source,omitempty"`
	Destination tlfund.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/iov-one/tlfund.Address" json:"destination,omitempty"`
	Amount      *coin.Coin       `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string           `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

// CreateAccountMsg creates the associated account of the owner for given
// asset. The main signer is the owner when none is given.
type CreateAccountMsg struct {
	Metadata *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    tlfund.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/tlfund.Address" json:"owner,omitempty"`
	Ticker   string           `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}
