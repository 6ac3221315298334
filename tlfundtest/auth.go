package tlfundtest

import (
	"context"
	"fmt"

	"github.com/iov-one/tlfund"
)

// Auth authenticates a fixed set of conditions: Signer and all of Signers.
type Auth struct {
	Signer  tlfund.Condition
	Signers []tlfund.Condition
}

func (a *Auth) GetConditions(tlfund.Context) []tlfund.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx tlfund.Context, addr tlfund.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key. It
// stands in for the signature decorator in handler tests.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context signed by given conditions.
func (a *CtxAuth) SetConditions(ctx tlfund.Context, conds ...tlfund.Condition) tlfund.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx tlfund.Context) []tlfund.Condition {
	switch conds := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []tlfund.Condition:
		return conds
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, conds))
	}
}

func (a *CtxAuth) HasAddress(ctx tlfund.Context, addr tlfund.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []tlfund.Condition, addr tlfund.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
