package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chocolate/internal/platform/metrics"
	projectModels "chocolate/internal/projects/models"
	reviewModels "chocolate/internal/reviews/models"
	verificationModels "chocolate/internal/verification/models"
	id "chocolate/pkg/domain"
	"chocolate/pkg/platform/httputil"
	"chocolate/pkg/platform/middleware/auth"
	"chocolate/pkg/platform/middleware/metadata"
	"chocolate/pkg/platform/middleware/request"
	"chocolate/pkg/platform/middleware/requesttime"
	"chocolate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/contract-mocks.go -package=mocks

// Contract is the registry surface served over HTTP.
type Contract interface {
	AddProject(ctx context.Context, name, meta []byte) (id.ProjectID, error)
	GetProject(ctx context.Context, projectID id.ProjectID) (projectModels.Project, error)
	ListProjects(ctx context.Context) ([]projectModels.ProjectEntry, error)
	AddReview(ctx context.Context, projectID id.ProjectID, rating uint32, body []byte) (id.ReviewID, error)
	GetReview(ctx context.Context, projectID id.ProjectID, user id.AccountID) (reviewModels.Review, error)
	ReviewsForProject(ctx context.Context, projectID id.ProjectID) ([]reviewModels.Review, error)
	ReviewersForProject(ctx context.Context, projectID id.ProjectID) ([]id.AccountID, error)
	ProjectsReviewedBy(ctx context.Context, user id.AccountID) ([]projectModels.ProjectEntry, error)
	AddAuthorizer(ctx context.Context, account id.AccountID) error
	Authorizers(ctx context.Context) ([]id.AccountID, error)
	InitiateVerification(ctx context.Context) ([]byte, error)
	FinalizeVerification(ctx context.Context, signature []byte, address id.AccountID) error
	PendingVerification(ctx context.Context, address id.AccountID) (verificationModels.VerifyDetails, error)
	VerifiedAccounts(ctx context.Context) ([]id.AccountID, error)
	IsVerified(ctx context.Context, address id.AccountID) (bool, error)
}

// Handler wires registry endpoints to the contract host.
type Handler struct {
	contract  Contract
	validator auth.JWTValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a registry handler with its dependencies.
func New(contract Contract, validator auth.JWTValidator, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		contract:  contract,
		validator: validator,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register mounts the registry endpoints on the router. Every route requires
// a bearer token.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(request.Recovery(h.logger))
	api.Use(request.RequestID)
	api.Use(request.Logger(h.logger))
	api.Use(request.Latency(h.metrics))
	api.Use(request.ContentTypeJSON)
	api.Use(requesttime.Middleware)
	api.Use(metadata.ClientMetadata)
	api.Use(auth.RequireAuth(h.validator, h.logger))

	api.Post("/projects", h.handleAddProject)
	api.Get("/projects", h.handleListProjects)
	api.Get("/projects/{id}", h.handleGetProject)
	api.Post("/projects/{id}/reviews", h.handleAddReview)
	api.Get("/projects/{id}/reviews", h.handleReviewsForProject)
	api.Get("/projects/{id}/reviews/{account}", h.handleGetReview)
	api.Get("/projects/{id}/reviewers", h.handleReviewersForProject)
	api.Get("/accounts/{account}/reviews", h.handleProjectsReviewedBy)

	api.Post("/authorizers", h.handleAddAuthorizer)
	api.Get("/authorizers", h.handleAuthorizers)

	api.Post("/verifications", h.handleInitiateVerification)
	api.Post("/verifications/finalize", h.handleFinalizeVerification)
	api.Get("/verifications/{account}", h.handlePendingVerification)
	api.Get("/verified", h.handleVerifiedAccounts)
	api.Get("/verified/{account}", h.handleIsVerified)

	r.Mount("/", api)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func projectParam(r *http.Request) (id.ProjectID, error) {
	return id.ParseProjectID(chi.URLParam(r, "id"))
}

func accountParam(r *http.Request) (id.AccountID, error) {
	return id.ParseAccountID(chi.URLParam(r, "account"))
}

// -----------------------------------------------------------------------------
// Projects
// -----------------------------------------------------------------------------

func (h *Handler) handleAddProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddProjectRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	projectID, err := h.contract.AddProject(ctx, req.name, req.meta)
	if err != nil {
		h.fail(w, r, "add project failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, IDResponse{ID: uint32(projectID)})
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	entries, err := h.contract.ListProjects(r.Context())
	if err != nil {
		h.fail(w, r, "list projects failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProjectEntries(entries))
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectParam(r)
	if err != nil {
		h.fail(w, r, "invalid project id", err)
		return
	}
	p, err := h.contract.GetProject(r.Context(), projectID)
	if err != nil {
		h.fail(w, r, "get project failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProject(projectID, p))
}

// -----------------------------------------------------------------------------
// Reviews
// -----------------------------------------------------------------------------

func (h *Handler) handleAddReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID, err := projectParam(r)
	if err != nil {
		h.fail(w, r, "invalid project id", err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddReviewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reviewID, err := h.contract.AddReview(ctx, projectID, *req.Rating, req.body)
	if err != nil {
		h.fail(w, r, "add review failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, IDResponse{ID: uint32(reviewID)})
}

func (h *Handler) handleReviewsForProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectParam(r)
	if err != nil {
		h.fail(w, r, "invalid project id", err)
		return
	}
	reviews, err := h.contract.ReviewsForProject(r.Context(), projectID)
	if err != nil {
		h.fail(w, r, "list reviews failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReviews(reviews))
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectParam(r)
	if err != nil {
		h.fail(w, r, "invalid project id", err)
		return
	}
	user, err := accountParam(r)
	if err != nil {
		h.fail(w, r, "invalid account", err)
		return
	}
	review, err := h.contract.GetReview(r.Context(), projectID, user)
	if err != nil {
		h.fail(w, r, "get review failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReview(review))
}

func (h *Handler) handleReviewersForProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectParam(r)
	if err != nil {
		h.fail(w, r, "invalid project id", err)
		return
	}
	reviewers, err := h.contract.ReviewersForProject(r.Context(), projectID)
	if err != nil {
		h.fail(w, r, "list reviewers failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AccountsResponse{Accounts: nonNil(reviewers)})
}

func (h *Handler) handleProjectsReviewedBy(w http.ResponseWriter, r *http.Request) {
	user, err := accountParam(r)
	if err != nil {
		h.fail(w, r, "invalid account", err)
		return
	}
	entries, err := h.contract.ProjectsReviewedBy(r.Context(), user)
	if err != nil {
		h.fail(w, r, "list reviewed projects failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProjectEntries(entries))
}

// -----------------------------------------------------------------------------
// Authorizers
// -----------------------------------------------------------------------------

func (h *Handler) handleAddAuthorizer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddAuthorizerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.contract.AddAuthorizer(ctx, req.account); err != nil {
		h.fail(w, r, "add authorizer failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAuthorizers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.contract.Authorizers(r.Context())
	if err != nil {
		h.fail(w, r, "list authorizers failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AccountsResponse{Accounts: nonNil(accounts)})
}

// -----------------------------------------------------------------------------
// Verification
// -----------------------------------------------------------------------------

func (h *Handler) handleInitiateVerification(w http.ResponseWriter, r *http.Request) {
	msg, err := h.contract.InitiateVerification(r.Context())
	if err != nil {
		h.fail(w, r, "initiate verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ChallengeResponse{Message: hexBytes(msg)})
}

func (h *Handler) handleFinalizeVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[FinalizeVerificationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.contract.FinalizeVerification(ctx, req.signature, req.address); err != nil {
		h.fail(w, r, "finalize verification failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePendingVerification(w http.ResponseWriter, r *http.Request) {
	address, err := accountParam(r)
	if err != nil {
		h.fail(w, r, "invalid account", err)
		return
	}
	details, err := h.contract.PendingVerification(r.Context(), address)
	if err != nil {
		h.fail(w, r, "pending verification lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PendingResponse{Index: details.Index, Message: hexBytes(details.Message)})
}

func (h *Handler) handleVerifiedAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.contract.VerifiedAccounts(r.Context())
	if err != nil {
		h.fail(w, r, "list verified accounts failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AccountsResponse{Accounts: nonNil(accounts)})
}

func (h *Handler) handleIsVerified(w http.ResponseWriter, r *http.Request) {
	address, err := accountParam(r)
	if err != nil {
		h.fail(w, r, "invalid account", err)
		return
	}
	verified, err := h.contract.IsVerified(r.Context(), address)
	if err != nil {
		h.fail(w, r, "verified lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VerifiedResponse{Verified: verified})
}
