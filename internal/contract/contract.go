// Package contract hosts the registry: every public operation runs here, one
// at a time, against a staging batch that is committed only on success.
package contract

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"chocolate/internal/platform/crypto"
	projectModels "chocolate/internal/projects/models"
	reviewModels "chocolate/internal/reviews/models"
	verificationModels "chocolate/internal/verification/models"
	"chocolate/internal/verification/ports"
	id "chocolate/pkg/domain"
	dErrors "chocolate/pkg/domain-errors"
	"chocolate/pkg/platform/audit"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/platform/sentinel"
	"chocolate/pkg/requestcontext"
)

const tracerName = "chocolate/internal/contract"

// AuditPort receives an event for every committed mutation and every
// rejected verification.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Contract struct {
	mu      sync.Mutex
	backend kv.Backend
	admin   id.AccountID

	hasher      ports.Hasher
	recoverer   ports.Recoverer
	callTimeout time.Duration

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	auditor AuditPort
}

type Option func(*Contract)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Contract) {
		c.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Contract) {
		c.metrics = m
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Contract) {
		c.tracer = tp.Tracer(tracerName)
	}
}

func WithAuditor(a AuditPort) Option {
	return func(c *Contract) {
		c.auditor = a
	}
}

// WithHasher replaces the default Blake2b-256 hasher.
func WithHasher(h ports.Hasher) Option {
	return func(c *Contract) {
		c.hasher = h
	}
}

func WithRecoverer(r ports.Recoverer) Option {
	return func(c *Contract) {
		c.recoverer = r
	}
}

// WithCallTimeout bounds calls whose context has no deadline.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Contract) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// New hosts the state held by backend. admin is the only account allowed to
// add authorizers.
func New(backend kv.Backend, admin id.AccountID, opts ...Option) (*Contract, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if admin.IsNil() {
		return nil, errors.New("admin account is required")
	}
	c := &Contract{
		backend:     backend,
		admin:       admin,
		hasher:      crypto.Blake2b{},
		recoverer:   crypto.Secp256k1{},
		callTimeout: defaultCallTimeout,
		logger:      slog.Default(),
		tracer:      otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

func (c *Contract) Admin() id.AccountID {
	return c.admin
}

func callerFrom(ctx context.Context) (id.AccountID, error) {
	caller, ok := requestcontext.Caller(ctx)
	if !ok {
		return id.AccountID{}, dErrors.New(dErrors.CodeUnauthorized, "caller is required")
	}
	return caller, nil
}

// -----------------------------------------------------------------------------
// Projects
// -----------------------------------------------------------------------------

// AddProject registers a project owned by the caller.
func (c *Contract) AddProject(ctx context.Context, name, meta []byte) (id.ProjectID, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return 0, err
	}
	projectID, err := runInTx(c, ctx, "AddProject", func(ctx context.Context, s *stores) (id.ProjectID, error) {
		projectID, err := s.projects.Create(ctx, caller, name, meta)
		if err != nil {
			return 0, translateCounterErr(err, "failed to create project")
		}
		return projectID, nil
	})
	if err != nil {
		return 0, err
	}
	c.emit(ctx, audit.Event{Action: audit.ActionProjectAdded, Actor: caller, Subject: projectID.String()})
	return projectID, nil
}

func (c *Contract) GetProject(ctx context.Context, projectID id.ProjectID) (projectModels.Project, error) {
	return runInTx(c, ctx, "GetProject", func(ctx context.Context, s *stores) (projectModels.Project, error) {
		p, err := s.projects.Get(ctx, projectID)
		if errors.Is(err, projectModels.ErrProjectNotFound) {
			return projectModels.Project{}, dErrors.Wrap(err, dErrors.CodeNotFound, "project not found")
		}
		if err != nil {
			return projectModels.Project{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load project")
		}
		return p, nil
	})
}

func (c *Contract) ListProjects(ctx context.Context) ([]projectModels.ProjectEntry, error) {
	return runInTx(c, ctx, "ListProjects", func(ctx context.Context, s *stores) ([]projectModels.ProjectEntry, error) {
		entries, err := s.projects.List(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list projects")
		}
		return entries, nil
	})
}

// -----------------------------------------------------------------------------
// Reviews
// -----------------------------------------------------------------------------

// AddReview records the caller's single review of projectID.
func (c *Contract) AddReview(ctx context.Context, projectID id.ProjectID, rating uint32, body []byte) (id.ReviewID, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return 0, err
	}
	reviewID, err := runInTx(c, ctx, "AddReview", func(ctx context.Context, s *stores) (id.ReviewID, error) {
		return s.ledger.AddReview(ctx, caller, projectID, rating, body)
	})
	if err != nil {
		return 0, err
	}
	c.emit(ctx, audit.Event{Action: audit.ActionReviewAdded, Actor: caller, Subject: projectID.String()})
	return reviewID, nil
}

func (c *Contract) GetReview(ctx context.Context, projectID id.ProjectID, user id.AccountID) (reviewModels.Review, error) {
	return runInTx(c, ctx, "GetReview", func(ctx context.Context, s *stores) (reviewModels.Review, error) {
		return s.ledger.GetReview(ctx, projectID, user)
	})
}

func (c *Contract) ReviewsForProject(ctx context.Context, projectID id.ProjectID) ([]reviewModels.Review, error) {
	return runInTx(c, ctx, "ReviewsForProject", func(ctx context.Context, s *stores) ([]reviewModels.Review, error) {
		return s.ledger.ReviewsForProject(ctx, projectID)
	})
}

func (c *Contract) ReviewersForProject(ctx context.Context, projectID id.ProjectID) ([]id.AccountID, error) {
	return runInTx(c, ctx, "ReviewersForProject", func(ctx context.Context, s *stores) ([]id.AccountID, error) {
		return s.ledger.ReviewersForProject(ctx, projectID)
	})
}

func (c *Contract) ProjectsReviewedBy(ctx context.Context, user id.AccountID) ([]projectModels.ProjectEntry, error) {
	return runInTx(c, ctx, "ProjectsReviewedBy", func(ctx context.Context, s *stores) ([]projectModels.ProjectEntry, error) {
		return s.ledger.ProjectsReviewedBy(ctx, user)
	})
}

// -----------------------------------------------------------------------------
// Authorizers
// -----------------------------------------------------------------------------

// AddAuthorizer lets account finalize verifications. Only the admin may call
// it; adding an existing authorizer succeeds without a write.
func (c *Contract) AddAuthorizer(ctx context.Context, account id.AccountID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	added, err := runInTx(c, ctx, "AddAuthorizer", func(ctx context.Context, s *stores) (bool, error) {
		if caller != c.admin {
			return false, dErrors.Wrap(verificationModels.ErrNotAuthorized, dErrors.CodeForbidden, "only the admin may add authorizers")
		}
		return addAuthorizer(ctx, s, account)
	})
	if err != nil {
		return err
	}
	if added {
		c.emit(ctx, audit.Event{Action: audit.ActionAuthorizerAdded, Actor: caller, Subject: account.String()})
	}
	return nil
}

// SeedAuthorizers adds accounts without a caller. It exists for startup
// configuration and is not reachable over HTTP.
func (c *Contract) SeedAuthorizers(ctx context.Context, accounts ...id.AccountID) error {
	_, err := runInTx(c, ctx, "SeedAuthorizers", func(ctx context.Context, s *stores) (struct{}, error) {
		for _, account := range accounts {
			if _, err := addAuthorizer(ctx, s, account); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func addAuthorizer(ctx context.Context, s *stores, account id.AccountID) (bool, error) {
	added, err := s.authorizers.Add(ctx, account)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add authorizer")
	}
	return added, nil
}

func (c *Contract) Authorizers(ctx context.Context) ([]id.AccountID, error) {
	return runInTx(c, ctx, "Authorizers", func(ctx context.Context, s *stores) ([]id.AccountID, error) {
		set, err := s.authorizers.List(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list authorizers")
		}
		return set, nil
	})
}

// -----------------------------------------------------------------------------
// Verification
// -----------------------------------------------------------------------------

// InitiateVerification returns the challenge the caller must sign.
func (c *Contract) InitiateVerification(ctx context.Context) ([]byte, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	type initiated struct {
		message []byte
		fresh   bool
	}
	res, err := runInTx(c, ctx, "InitiateVerification", func(ctx context.Context, s *stores) (initiated, error) {
		_, pendingErr := s.flow.Pending(ctx, caller)
		msg, err := s.flow.Initiate(ctx, caller)
		return initiated{message: msg, fresh: pendingErr != nil}, err
	})
	if err != nil {
		return nil, err
	}
	if res.fresh {
		c.emit(ctx, audit.Event{Action: audit.ActionVerificationInitiated, Actor: caller, Subject: caller.String()})
	}
	return res.message, nil
}

// FinalizeVerification checks signature against address's pending challenge.
// The caller must be an authorizer.
func (c *Contract) FinalizeVerification(ctx context.Context, signature []byte, address id.AccountID) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	_, err = runInTx(c, ctx, "FinalizeVerification", func(ctx context.Context, s *stores) (struct{}, error) {
		return struct{}{}, s.flow.Finalize(ctx, caller, signature, address)
	})
	if err != nil {
		code := dErrors.CodeOf(err)
		c.metrics.incrementVerification(string(code))
		if code != dErrors.CodeInternal && code != dErrors.CodeTimeout {
			c.emit(ctx, audit.Event{
				Action:  audit.ActionVerificationRejected,
				Actor:   caller,
				Subject: address.String(),
				Reason:  string(code),
			})
		}
		return err
	}
	c.metrics.incrementVerification("verified")
	c.emit(ctx, audit.Event{Action: audit.ActionAccountVerified, Actor: caller, Subject: address.String()})
	return nil
}

// PendingVerification returns address's outstanding challenge.
func (c *Contract) PendingVerification(ctx context.Context, address id.AccountID) (verificationModels.VerifyDetails, error) {
	return runInTx(c, ctx, "PendingVerification", func(ctx context.Context, s *stores) (verificationModels.VerifyDetails, error) {
		return s.flow.Pending(ctx, address)
	})
}

func (c *Contract) VerifiedAccounts(ctx context.Context) ([]id.AccountID, error) {
	return runInTx(c, ctx, "VerifiedAccounts", func(ctx context.Context, s *stores) ([]id.AccountID, error) {
		return s.flow.VerifiedAccounts(ctx)
	})
}

func (c *Contract) IsVerified(ctx context.Context, address id.AccountID) (bool, error) {
	return runInTx(c, ctx, "IsVerified", func(ctx context.Context, s *stores) (bool, error) {
		return s.flow.IsVerified(ctx, address)
	})
}

func translateCounterErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrOverflow) {
		return dErrors.Wrap(err, dErrors.CodeOverflow, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
