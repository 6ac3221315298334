package crypto

import (
	"github.com/iov-one/tlfund"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() tlfund.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address returns the address of the condition of this public key.
func (p *PublicKey) Address() tlfund.Address {
	return p.Condition().Address()
}
