package utils

import (
	"github.com/iov-one/tlfund"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// ActionTagger adds a tag `action = msg.Path()` to every successful
// delivery, so clients can search and subscribe to eg. fund creation.
type ActionTagger struct{}

var _ tlfund.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Checker) (*tlfund.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx tlfund.Context, db tlfund.KVStore, tx tlfund.Tx, next tlfund.Deliverer) (*tlfund.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
