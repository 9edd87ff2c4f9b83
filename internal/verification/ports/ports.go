package ports

import (
	"context"

	id "chocolate/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks

// Hasher produces the 256-bit digests used for challenges and account
// derivation.
type Hasher interface {
	Hash(data []byte) [32]byte
}

// Recoverer returns the public key that produced sig over digest.
type Recoverer interface {
	Recover(sig []byte, digest [32]byte) ([]byte, error)
}

// AuthorizerChecker answers whether an account may finalize verifications.
type AuthorizerChecker interface {
	Contains(ctx context.Context, account id.AccountID) (bool, error)
}
