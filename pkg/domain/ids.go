package domain

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/mr-tron/base58"

	dErrors "chocolate/pkg/domain-errors"
)

// AccountIDSize is the fixed width of an account identifier in bytes.
const AccountIDSize = 32

// AccountID identifies a participant. It is derived by hashing a public key,
// is totally ordered by its bytes, and renders as base58 text.
type AccountID [AccountIDSize]byte

// ParseAccountID decodes a base58 account. It rejects anything that does not
// decode to exactly AccountIDSize bytes.
func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account is required")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return AccountID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "account is not valid base58")
	}
	return AccountIDFromBytes(raw)
}

// AccountIDFromBytes copies a raw 32-byte account.
func AccountIDFromBytes(raw []byte) (AccountID, error) {
	var a AccountID
	if len(raw) != AccountIDSize {
		return a, dErrors.New(dErrors.CodeInvalidInput, "account must be "+strconv.Itoa(AccountIDSize)+" bytes")
	}
	copy(a[:], raw)
	return a, nil
}

func (a AccountID) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the raw account bytes.
func (a AccountID) Bytes() []byte {
	return bytes.Clone(a[:])
}

func (a AccountID) IsNil() bool {
	return a == AccountID{}
}

// Compare orders accounts byte-lexicographically.
func (a AccountID) Compare(b AccountID) int {
	return bytes.Compare(a[:], b[:])
}

func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ProjectID is the dense, zero-based project identifier.
type ProjectID uint32

// ParseProjectID parses a decimal project id.
func ParseProjectID(s string) (ProjectID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "project id must be an unsigned 32-bit integer")
	}
	return ProjectID(n), nil
}

func (id ProjectID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Key returns the big-endian encoding used in storage keys.
func (id ProjectID) Key() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(id))
}

// ReviewID is the immutable identifier assigned to a review at creation.
type ReviewID uint32

func (id ReviewID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id ReviewID) Key() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(id))
}
