package crypto

import (
	"github.com/iov-one/treasury"
)

// ExtensionName is used for the Conditions we get from signatures.
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key. No serializing to
// support hardware devices as well.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

// Identity is implemented by anything that can be turned into a condition,
// and from it into an address.
type Identity interface {
	Condition() treasury.Condition
}

// AddressOf returns the address represented by given identity.
func AddressOf(id Identity) treasury.Address {
	return id.Condition().Address()
}
