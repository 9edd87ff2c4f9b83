// Package crypto provides the hashing and signature recovery primitives used
// by the verification flow.
package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	id "chocolate/pkg/domain"
)

const (
	Blake2b256 = "blake2b-256"
	Keccak256  = "keccak-256"
)

// SignatureSize is R(32) || S(32) || V(1).
const SignatureSize = 65

var ErrMalformedSignature = errors.New("malformed signature")

// Hasher produces a 256-bit digest.
type Hasher interface {
	Hash(data []byte) [32]byte
}

type Blake2b struct{}

func (Blake2b) Hash(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

type Keccak struct{}

func (Keccak) Hash(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

// NewHasher resolves a configured hash name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", Blake2b256:
		return Blake2b{}, nil
	case Keccak256:
		return Keccak{}, nil
	default:
		return nil, fmt.Errorf("unknown hash %q", name)
	}
}

// Secp256k1 recovers public keys from recoverable secp256k1 signatures.
type Secp256k1 struct{}

// Recover returns the 33-byte compressed public key that produced sig over
// digest. V may be given as 0/1 or 27/28.
func (Secp256k1) Recover(sig []byte, digest [32]byte) ([]byte, error) {
	if len(sig) != SignatureSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedSignature, SignatureSize, len(sig))
	}
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrMalformedSignature, sig[64])
	}

	// decred's compact form: header byte 27 + recid (+4 for a compressed key), then R || S.
	compact := make([]byte, 0, SignatureSize)
	compact = append(compact, 27+4+v)
	compact = append(compact, sig[:64]...)

	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	return pub.SerializeCompressed(), nil
}

// WrapMessage frames a challenge the way signing wallets present raw bytes.
func WrapMessage(message []byte) []byte {
	const open, closing = "<Bytes>", "</Bytes>"
	out := make([]byte, 0, len(open)+len(message)+len(closing))
	out = append(out, open...)
	out = append(out, message...)
	return append(out, closing...)
}

// DeriveAccount maps a public key to the account it controls.
func DeriveAccount(h Hasher, pubkey []byte) id.AccountID {
	return id.AccountID(h.Hash(pubkey))
}
