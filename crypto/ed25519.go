package crypto

import (
	"encoding/hex"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

var _ Identity = (*PublicKey)(nil)

// NewPublicKey returns a public key represented by given raw bytes.
func NewPublicKey(raw []byte) (*PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return &PublicKey{key: append(ed25519.PublicKey(nil), raw...)}, nil
}

// Bytes returns the raw representation of the key.
func (p *PublicKey) Bytes() []byte {
	return p.key
}

// Verify verifies the signature was created with this message and public key.
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.key) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(p.key, message, sig)
}

// Condition encodes the public key into a condition.
func (p *PublicKey) Condition() treasury.Condition {
	if p == nil || len(p.key) == 0 {
		return nil
	}
	return treasury.NewCondition(ExtensionName, "ed25519", p.key)
}

// Address returns the address of the condition this key represents.
func (p *PublicKey) Address() treasury.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
}

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(p.key, message), nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return &PublicKey{key: pub}
}

// MarshalText encodes the key seed as hex. The seed is enough to restore the
// key.
func (p *PrivateKey) MarshalText() ([]byte, error) {
	seed := p.key.Seed()
	out := make([]byte, hex.EncodedLen(len(seed)))
	hex.Encode(out, seed)
	return out, nil
}

// UnmarshalText restores a key from its hex encoded seed.
func (p *PrivateKey) UnmarshalText(text []byte) error {
	seed := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(seed, text); err != nil {
		return errors.Wrap(errors.ErrInput, "key is not hex encoded")
	}
	if len(seed) != ed25519.SeedSize {
		return errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	p.key = ed25519.NewKeyFromSeed(seed)
	return nil
}
