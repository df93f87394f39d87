// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNotApproved rejects a dispatch attempted before the approval gate.
var ErrNotApproved = errors.New("follow-up is not approved")

// ErrLeadNotFound is a sentinel error
type ErrLeadNotFound struct {
	LeadID string
}

func (e *ErrLeadNotFound) Error() string {
	return fmt.Sprintf("lead with ID %s not found", e.LeadID)
}

func NewLeadNotFound(id string) error {
	return &ErrLeadNotFound{LeadID: id}
}

type ErrFollowUpNotFound struct {
	FollowUpID string
}

func (e *ErrFollowUpNotFound) Error() string {
	return fmt.Sprintf("follow-up with ID %s not found", e.FollowUpID)
}

func NewFollowUpNotFound(id string) error {
	return &ErrFollowUpNotFound{FollowUpID: id}
}

// ErrInvalidTransition signals a state-machine edge that is not legal
// from the record's current status. SENT and FAILED are terminal.
type ErrInvalidTransition struct {
	FollowUpID string
	From       string
	To         string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("follow-up %s cannot move from %s to %s", e.FollowUpID, e.From, e.To)
}

func NewInvalidTransition(id, from, to string) error {
	return &ErrInvalidTransition{FollowUpID: id, From: from, To: to}
}

// ErrDeliveryFailed wraps the sender error after the FAILED transition has
// been recorded. Callers see both the state change and the cause.
type ErrDeliveryFailed struct {
	FollowUpID string
	Cause      error
}

func (e *ErrDeliveryFailed) Error() string {
	return fmt.Sprintf("delivery failed for follow-up %s: %v", e.FollowUpID, e.Cause)
}

func (e *ErrDeliveryFailed) Unwrap() error { return e.Cause }

func NewDeliveryFailed(id string, cause error) error {
	return &ErrDeliveryFailed{FollowUpID: id, Cause: cause}
}
