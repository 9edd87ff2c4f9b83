package models

import (
	"encoding/binary"
	"errors"

	id "chocolate/pkg/domain"
)

var (
	ErrNotAuthorized      = errors.New("caller is not an authorizer")
	ErrFlowNotInitiated   = errors.New("verification flow not initiated")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrVerificationFailed = errors.New("signature does not match the account")
)

// MessageSize is the account followed by a big-endian u32 challenge index.
const MessageSize = id.AccountIDSize + 4

// VerifyDetails is a pending challenge. Index is the value of
// verifications_count when it was issued.
type VerifyDetails struct {
	Index   uint32 `json:"index"`
	Message []byte `json:"message"`
}

// NewMessage builds the challenge an account must sign.
func NewMessage(account id.AccountID, index uint32) []byte {
	msg := make([]byte, 0, MessageSize)
	msg = append(msg, account[:]...)
	return binary.BigEndian.AppendUint32(msg, index)
}
