// Package service runs the challenge/response flow that binds an account to
// the key that controls it.
package service

import (
	"context"
	"errors"
	"fmt"

	"chocolate/internal/platform/crypto"
	"chocolate/internal/verification/models"
	"chocolate/internal/verification/ports"
	"chocolate/internal/verification/store"
	id "chocolate/pkg/domain"
	dErrors "chocolate/pkg/domain-errors"
	"chocolate/pkg/platform/sentinel"
)

type Flow struct {
	store       *store.Store
	authorizers ports.AuthorizerChecker
	hasher      ports.Hasher
	recoverer   ports.Recoverer
}

func New(s *store.Store, authorizers ports.AuthorizerChecker, hasher ports.Hasher, recoverer ports.Recoverer) *Flow {
	return &Flow{
		store:       s,
		authorizers: authorizers,
		hasher:      hasher,
		recoverer:   recoverer,
	}
}

// Initiate issues a challenge for caller. A caller with a challenge already
// pending gets the same message back and no counter moves.
func (f *Flow) Initiate(ctx context.Context, caller id.AccountID) ([]byte, error) {
	existing, err := f.store.Pending(ctx, caller)
	if err == nil {
		return existing.Message, nil
	}
	if !errors.Is(err, models.ErrFlowNotInitiated) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pending verification")
	}

	index, err := f.store.NextIndex(ctx)
	if err != nil {
		return nil, translateCounterErr(err, "failed to allocate verification index")
	}
	details := models.VerifyDetails{Index: index, Message: models.NewMessage(caller, index)}
	if err := f.store.PutPending(ctx, caller, details); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store pending verification")
	}
	return details.Message, nil
}

// Finalize checks that signature over address's pending challenge was made by
// the key address derives from. Only authorizers may finalize. A rejected
// signature leaves the challenge pending.
func (f *Flow) Finalize(ctx context.Context, caller id.AccountID, signature []byte, address id.AccountID) error {
	allowed, err := f.authorizers.Contains(ctx, caller)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check authorizers")
	}
	if !allowed {
		return dErrors.Wrap(models.ErrNotAuthorized, dErrors.CodeForbidden, "caller is not an authorizer")
	}

	details, err := f.store.Pending(ctx, address)
	if err != nil {
		return translatePendingErr(err)
	}

	digest := f.hasher.Hash(crypto.WrapMessage(details.Message))
	pubkey, err := f.recoverer.Recover(signature, digest)
	if err != nil {
		return dErrors.Wrap(fmt.Errorf("%w: %w", models.ErrInvalidSignature, err), dErrors.CodeInvalidSignature, "signature could not be recovered")
	}
	if id.AccountID(f.hasher.Hash(pubkey)) != address {
		return dErrors.Wrap(models.ErrVerificationFailed, dErrors.CodeVerificationFailed, "signature was made by a different account")
	}

	if err := f.store.DeletePending(ctx, address); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear pending verification")
	}
	if err := f.store.AppendVerified(ctx, address); err != nil {
		return translateCounterErr(err, "failed to record verified account")
	}
	return nil
}

func (f *Flow) Pending(ctx context.Context, account id.AccountID) (models.VerifyDetails, error) {
	d, err := f.store.Pending(ctx, account)
	if err != nil {
		return models.VerifyDetails{}, translatePendingErr(err)
	}
	return d, nil
}

// VerifiedAccounts returns every successful verification in order, repeats
// included.
func (f *Flow) VerifiedAccounts(ctx context.Context) ([]id.AccountID, error) {
	accounts, err := f.store.Verified(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verified accounts")
	}
	return accounts, nil
}

func (f *Flow) IsVerified(ctx context.Context, account id.AccountID) (bool, error) {
	ok, err := f.store.IsVerified(ctx, account)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check verified accounts")
	}
	return ok, nil
}

func translatePendingErr(err error) error {
	if errors.Is(err, models.ErrFlowNotInitiated) {
		return dErrors.Wrap(err, dErrors.CodeInvalidState, "no verification pending for account")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pending verification")
}

func translateCounterErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrOverflow) {
		return dErrors.Wrap(err, dErrors.CodeOverflow, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
