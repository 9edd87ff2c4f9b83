package handler

import (
	"encoding/hex"
	"strings"

	"chocolate/internal/platform/crypto"
	id "chocolate/pkg/domain"
	dErrors "chocolate/pkg/domain-errors"
)

// Size limits applied before anything reaches the contract.
const (
	maxNameBytes = 256
	maxMetaBytes = 4096
	maxBodyBytes = 16384
)

// AddProjectRequest is the body of POST /projects. Name and meta are hex.
type AddProjectRequest struct {
	Name string `json:"name"`
	Meta string `json:"meta"`

	name []byte
	meta []byte
}

func (r *AddProjectRequest) Validate() error {
	var err error
	if r.name, err = decodeHex("name", r.Name, maxNameBytes); err != nil {
		return err
	}
	if r.meta, err = decodeHex("meta", r.Meta, maxMetaBytes); err != nil {
		return err
	}
	return nil
}

// AddReviewRequest is the body of POST /projects/{id}/reviews.
type AddReviewRequest struct {
	Rating *uint32 `json:"rating"`
	Body   string  `json:"body"`

	body []byte
}

func (r *AddReviewRequest) Validate() error {
	if r.Rating == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "rating is required")
	}
	var err error
	r.body, err = decodeHex("body", r.Body, maxBodyBytes)
	return err
}

// AddAuthorizerRequest is the body of POST /authorizers.
type AddAuthorizerRequest struct {
	Account string `json:"account"`

	account id.AccountID
}

func (r *AddAuthorizerRequest) Validate() error {
	account, err := id.ParseAccountID(strings.TrimSpace(r.Account))
	if err != nil {
		return err
	}
	r.account = account
	return nil
}

// FinalizeVerificationRequest is the body of POST /verifications/finalize.
// The signature is hex R||S||V.
type FinalizeVerificationRequest struct {
	Signature string `json:"signature"`
	Address   string `json:"address"`

	signature []byte
	address   id.AccountID
}

func (r *FinalizeVerificationRequest) Validate() error {
	sig, err := decodeHex("signature", r.Signature, crypto.SignatureSize)
	if err != nil {
		return err
	}
	if len(sig) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "signature is required")
	}
	address, err := id.ParseAccountID(strings.TrimSpace(r.Address))
	if err != nil {
		return err
	}
	r.signature = sig
	r.address = address
	return nil
}

func decodeHex(field, s string, limit int) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, field+" must be hex encoded")
	}
	if len(raw) > limit {
		return nil, dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	return raw, nil
}
