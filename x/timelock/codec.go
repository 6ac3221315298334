package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tlfund"
)

// FundRecord is the state of a single time locked fund. It is stored under
// the fund address.
type FundRecord struct {
	Metadata *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Depositor and Seed are the inputs of the fund address derivation.
	Depositor tlfund.Address `protobuf:"bytes,2,opt,name=depositor,proto3,casttype=github.com/iov-one/tlfund.Address" json:"depositor,omitempty"`
	Seed      string         `protobuf:"bytes,3,opt,name=seed,proto3" json:"seed,omitempty"`
	Bump      uint32         `protobuf:"varint,4,opt,name=bump,proto3" json:"bump,omitempty"`
	// Ticker is the asset accepted by this fund.
	Ticker      string          `protobuf:"bytes,5,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Custody     tlfund.Address  `protobuf:"bytes,6,opt,name=custody,proto3,casttype=github.com/iov-one/tlfund.Address" json:"custody,omitempty"`
	Beneficiary tlfund.Address  `protobuf:"bytes,7,opt,name=beneficiary,proto3,casttype=github.com/iov-one/tlfund.Address" json:"beneficiary,omitempty"`
	Amount      uint64          `protobuf:"varint,8,opt,name=amount,proto3" json:"amount,omitempty"`
	UnlockTime  tlfund.UnixTime `protobuf:"varint,9,opt,name=unlock_time,json=unlockTime,proto3,casttype=github.com/iov-one/tlfund.UnixTime" json:"unlock_time,omitempty"`
}

func (m *FundRecord) Reset()         { *m = FundRecord{} }
func (m *FundRecord) String() string { return proto.CompactTextString(m) }
func (*FundRecord) ProtoMessage()    {}

// CreateFundMsg locks the amount for the beneficiary until the unlock time.
type CreateFundMsg struct {
	Metadata *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Depositor defaults to the main signer.
	Depositor tlfund.Address `protobuf:"bytes,2,opt,name=depositor,proto3,casttype=github.com/iov-one/tlfund.Address" json:"depositor,omitempty"`
	// Source defaults to the associated account of the depositor.
	Source      tlfund.Address  `protobuf:"bytes,3,opt,name=source,proto3,casttype=github.com/iov-one/tlfund.Address" json:"source,omitempty"`
	Seed        string          `protobuf:"bytes,4,opt,name=seed,proto3" json:"seed,omitempty"`
	Ticker      string          `protobuf:"bytes,5,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount      uint64          `protobuf:"varint,6,opt,name=amount,proto3" json:"amount,omitempty"`
	UnlockTime  tlfund.UnixTime `protobuf:"varint,7,opt,name=unlock_time,json=unlockTime,proto3,casttype=github.com/iov-one/tlfund.UnixTime" json:"unlock_time,omitempty"`
	Beneficiary tlfund.Address  `protobuf:"bytes,8,opt,name=beneficiary,proto3,casttype=github.com/iov-one/tlfund.Address" json:"beneficiary,omitempty"`
}

func (m *CreateFundMsg) Reset()         { *m = CreateFundMsg{} }
func (m *CreateFundMsg) String() string { return proto.CompactTextString(m) }
func (*CreateFundMsg) ProtoMessage()    {}

// RedeemMsg moves the whole fund to the beneficiary.
type RedeemMsg struct {
	Metadata    *tlfund.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	FundAddress tlfund.Address   `protobuf:"bytes,2,opt,name=fund_address,json=fundAddress,proto3,casttype=github.com/iov-one/tlfund.Address" json:"fund_address,omitempty"`
}

func (m *RedeemMsg) Reset()         { *m = RedeemMsg{} }
func (m *RedeemMsg) String() string { return proto.CompactTextString(m) }
func (*RedeemMsg) ProtoMessage()    {}

// FundStatus describes where a fund is in its lifecycle. It is computed and
// never stored.
type FundStatus int32

const (
	FundStatusInvalid  FundStatus = 0
	FundStatusLocked   FundStatus = 1
	FundStatusUnlocked FundStatus = 2
	FundStatusRedeemed FundStatus = 3
)

var fundStatusName = map[int32]string{
	0: "INVALID",
	1: "LOCKED",
	2: "UNLOCKED",
	3: "REDEEMED",
}

func (s FundStatus) String() string {
	return proto.EnumName(fundStatusName, int32(s))
}

// FundView is the result of a fund status query.
type FundView struct {
	Fund           *FundRecord `protobuf:"bytes,1,opt,name=fund,proto3" json:"fund,omitempty"`
	CustodyBalance uint64      `protobuf:"varint,2,opt,name=custody_balance,json=custodyBalance,proto3" json:"custody_balance,omitempty"`
	Status         FundStatus  `protobuf:"varint,3,opt,name=status,proto3,enum=timelock.FundStatus" json:"status,omitempty"`
}

func (m *FundView) Reset()         { *m = FundView{} }
func (m *FundView) String() string { return proto.CompactTextString(m) }
func (*FundView) ProtoMessage()    {}
