// internal/model/followup.go
package model

import "time"

// FollowUpType identifies the position of a follow-up in its sequence.
type FollowUpType string

const (
	FollowUpInitial FollowUpType = "INITIAL"
	FollowUpFirst   FollowUpType = "FIRST_FOLLOWUP"
	FollowUpSecond  FollowUpType = "SECOND_FOLLOWUP"
	FollowUpThird   FollowUpType = "THIRD_FOLLOWUP"
	FollowUpCustom  FollowUpType = "CUSTOM"
)

// FollowUpStatus is the single source of truth for a follow-up's lifecycle.
// Transitions are monotonic: PENDING -> APPROVED -> SENT or FAILED.
type FollowUpStatus string

const (
	StatusPending  FollowUpStatus = "PENDING"
	StatusApproved FollowUpStatus = "APPROVED"
	StatusSent     FollowUpStatus = "SENT"
	StatusFailed   FollowUpStatus = "FAILED"
)

type FollowUp struct {
	ID          string         `db:"id" json:"id"`
	LeadID      string         `db:"lead_id" json:"lead_id"`
	Type        FollowUpType   `db:"type" json:"type"`
	ScheduledAt time.Time      `db:"scheduled_at" json:"scheduled_at"`
	Message     string         `db:"message" json:"message"`
	Status      FollowUpStatus `db:"status" json:"status"`
	Approved    bool           `db:"approved" json:"approved"`
	ApprovedBy  *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	LastError   string         `db:"last_error" json:"last_error,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
