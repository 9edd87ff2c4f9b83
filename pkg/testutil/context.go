package testutil

import (
	"net/http"

	id "chocolate/pkg/domain"
	"chocolate/pkg/requestcontext"
)

// WithCaller sets the authenticated account on req, as the auth middleware
// would after validating a token.
func WithCaller(req *http.Request, account id.AccountID) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), account))
}

// WithBearer sets the Authorization header.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
