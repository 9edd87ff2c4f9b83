package contract

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	authorizerStore "chocolate/internal/authorizers/store"
	projectStore "chocolate/internal/projects/store"
	reviewService "chocolate/internal/reviews/service"
	reviewStore "chocolate/internal/reviews/store"
	verificationService "chocolate/internal/verification/service"
	verificationStore "chocolate/internal/verification/store"
	dErrors "chocolate/pkg/domain-errors"
	"chocolate/pkg/platform/kv"
	"chocolate/pkg/requestcontext"
)

// defaultCallTimeout bounds a call whose context carries no deadline.
const defaultCallTimeout = 5 * time.Second

// stores are the components of one call, all bound to the call's batch.
type stores struct {
	projects    *projectStore.Store
	ledger      *reviewService.Ledger
	authorizers *authorizerStore.Store
	flow        *verificationService.Flow
}

func (c *Contract) bind(batch *kv.Batch) *stores {
	projects := projectStore.New(batch)
	authorizers := authorizerStore.New(batch)
	return &stores{
		projects:    projects,
		ledger:      reviewService.New(reviewStore.New(batch), projects),
		authorizers: authorizers,
		flow:        verificationService.New(verificationStore.New(batch), authorizers, c.hasher, c.recoverer),
	}
}

// runInTx executes fn with exclusive access to the state. Writes staged by fn
// reach the backend in one Apply, and only when fn and the context both
// succeed.
func runInTx[T any](c *Contract, ctx context.Context, op string, fn func(ctx context.Context, s *stores) (T, error)) (result T, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "contract."+op, trace.WithAttributes(attribute.String("op", op)))
	if caller, ok := requestcontext.Caller(ctx); ok {
		span.SetAttributes(attribute.String("caller", caller.String()))
	}
	defer func() {
		c.finish(ctx, span, op, start, err)
	}()

	if err := ctx.Err(); err != nil {
		return result, dErrors.Wrap(err, dErrors.CodeTimeout, "call aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check again after acquiring the lock
	if err := ctx.Err(); err != nil {
		return result, dErrors.Wrap(err, dErrors.CodeTimeout, "call aborted: context cancelled")
	}

	batch := kv.NewBatch(c.backend)
	result, err = fn(ctx, c.bind(batch))
	if err == nil {
		err = ctx.Err()
		if err != nil {
			err = dErrors.Wrap(err, dErrors.CodeTimeout, "call aborted: context cancelled")
		}
	}
	if err != nil {
		batch.Discard()
		var zero T
		return zero, err
	}
	if err := batch.Commit(ctx); err != nil {
		var zero T
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return zero, dErrors.Wrap(err, dErrors.CodeTimeout, "commit aborted: context cancelled")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit call")
	}
	return result, nil
}

func (c *Contract) finish(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	defer span.End()
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	c.metrics.observeCall(op, outcome, time.Since(start))

	attrs := []any{"op", op, "request_id", requestcontext.RequestID(ctx)}
	if caller, ok := requestcontext.Caller(ctx); ok {
		attrs = append(attrs, "caller", caller.String())
	}
	switch {
	case err == nil:
		c.logger.DebugContext(ctx, "contract call", attrs...)
	case dErrors.CodeOf(err) == dErrors.CodeInternal:
		c.logger.ErrorContext(ctx, "contract call failed", append(attrs, "error", err)...)
	default:
		c.logger.WarnContext(ctx, "contract call rejected", append(attrs, "code", outcome, "error", err)...)
	}
}
