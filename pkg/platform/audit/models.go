// Package audit records a trail of contract calls for operators. It is an
// operational log: nothing in the contract reads it back.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	id "chocolate/pkg/domain"
)

// ErrBufferFull is returned when an async publisher has no room left.
var ErrBufferFull = errors.New("audit buffer full")

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers changes to who may attest identities and the
	// attestations themselves.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected attestations.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine registry activity.
	CategoryOperations EventCategory = "operations"
)

type Action string

const (
	ActionProjectAdded          Action = "project_added"
	ActionReviewAdded           Action = "review_added"
	ActionAuthorizerAdded       Action = "authorizer_added"
	ActionVerificationInitiated Action = "verification_initiated"
	ActionAccountVerified       Action = "account_verified"
	ActionVerificationRejected  Action = "verification_rejected"
)

var actionCategories = map[Action]EventCategory{
	ActionAuthorizerAdded:      CategoryCompliance,
	ActionAccountVerified:      CategoryCompliance,
	ActionVerificationRejected: CategorySecurity,

	ActionProjectAdded:          CategoryOperations,
	ActionReviewAdded:           CategoryOperations,
	ActionVerificationInitiated: CategoryOperations,
}

// Category returns the category for a. Unknown actions are operations.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is one audited call. Subject names what the call acted on: a project
// id, a reviewed project, or the account being verified.
type Event struct {
	ID        uuid.UUID     `json:"id"`
	Category  EventCategory `json:"category"`
	Action    Action        `json:"action"`
	Actor     id.AccountID  `json:"actor"`
	Subject   string        `json:"subject,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	ClientIP  string        `json:"client_ip,omitempty"`
	UserAgent string        `json:"user_agent,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Appender accepts events. Appending an event whose ID is already stored is a
// no-op.
type Appender interface {
	Append(ctx context.Context, event Event) error
}

// Store is an Appender that can be queried.
type Store interface {
	Appender
	ListByActor(ctx context.Context, actor id.AccountID) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
