// Package cryptotest signs verification challenges with real secp256k1 keys.
package cryptotest

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"chocolate/internal/platform/crypto"
	id "chocolate/pkg/domain"
)

type Signer struct {
	key *secp256k1.PrivateKey
}

// NewSigner derives a deterministic key from seed so failures reproduce.
func NewSigner(seed string) *Signer {
	sum := sha256.Sum256([]byte(seed))
	return &Signer{key: secp256k1.PrivKeyFromBytes(sum[:])}
}

// RandomSigner generates a fresh key.
func RandomSigner(t testing.TB) *Signer {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &Signer{key: key}
}

// PublicKey returns the 33-byte compressed key.
func (s *Signer) PublicKey() []byte {
	return s.key.PubKey().SerializeCompressed()
}

func (s *Signer) Account(h crypto.Hasher) id.AccountID {
	return crypto.DeriveAccount(h, s.PublicKey())
}

// Sign returns R || S || V with V in {0, 1}.
func (s *Signer) Sign(digest [32]byte) []byte {
	compact := ecdsa.SignCompact(s.key, digest[:], true)
	sig := make([]byte, 0, crypto.SignatureSize)
	sig = append(sig, compact[1:]...)
	return append(sig, compact[0]-27-4)
}

// SignChallenge signs the wrapped form of a challenge message.
func (s *Signer) SignChallenge(h crypto.Hasher, message []byte) []byte {
	return s.Sign(h.Hash(crypto.WrapMessage(message)))
}
