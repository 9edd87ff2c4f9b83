package contract

import (
	"context"

	"chocolate/pkg/platform/audit"
)

// emit logs a committed change and forwards it to the auditor. Audit failures
// are logged only; the call has already committed.
func (c *Contract) emit(ctx context.Context, event audit.Event) {
	c.logger.InfoContext(ctx, "contract event",
		"action", event.Action,
		"actor", event.Actor.String(),
		"subject", event.Subject,
	)
	if c.auditor == nil {
		return
	}
	if err := c.auditor.Emit(ctx, event); err != nil {
		c.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
