// internal/repository/followup_repository.go
package repository

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"leadflow-backend/internal/model"
)

// FollowUpRepositoryInterface defines methods used by services.
// The Mark* methods are conditional updates guarded on the expected prior
// status; they report how many rows changed so the caller can tell a legal
// transition from a stale or concurrent one.
type FollowUpRepositoryInterface interface {
	CreateBatch(items []*model.FollowUp) error
	GetByID(id string) (*model.FollowUp, error)
	GetWithLead(id string) (*model.FollowUp, *model.Lead, error)
	List(leadID, status string) ([]model.FollowUp, error)
	ListDue(now time.Time) ([]model.FollowUp, error)
	MarkApproved(id, approvedBy string) (int64, error)
	MarkSent(id string) (int64, error)
	MarkFailed(id, lastError string) (int64, error)
}

type FollowUpRepository struct {
	DB *sql.DB
}

var _ FollowUpRepositoryInterface = (*FollowUpRepository)(nil)

const followUpColumns = `id, lead_id, type, scheduled_at, message, status, approved,
       approved_by, approved_at, completed_at, last_error, created_at, updated_at`

func scanFollowUp(row interface{ Scan(...any) error }, f *model.FollowUp) error {
	return row.Scan(
		&f.ID, &f.LeadID, &f.Type, &f.ScheduledAt, &f.Message, &f.Status, &f.Approved,
		&f.ApprovedBy, &f.ApprovedAt, &f.CompletedAt, &f.LastError, &f.CreatedAt, &f.UpdatedAt,
	)
}

// CreateBatch materializes a generated schedule in one transaction. All rows
// land in PENDING with approved=false; later approval and dispatch never
// re-derive the schedule.
func (r *FollowUpRepository) CreateBatch(items []*model.FollowUp) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}

	query := `
        INSERT INTO follow_ups (id, lead_id, type, scheduled_at, message, status, approved, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	for _, f := range items {
		if f.CreatedAt.IsZero() {
			f.CreatedAt = time.Now()
		}
		if _, err := tx.Exec(query,
			f.ID, f.LeadID, f.Type, f.ScheduledAt, f.Message, f.Status, f.Approved, f.CreatedAt,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *FollowUpRepository) GetByID(id string) (*model.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE id=$1`
	var f model.FollowUp
	if err := scanFollowUp(r.DB.QueryRow(query, id), &f); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// GetWithLead returns a follow-up joined with its owning lead.
func (r *FollowUpRepository) GetWithLead(id string) (*model.FollowUp, *model.Lead, error) {
	query := `
        SELECT f.id, f.lead_id, f.type, f.scheduled_at, f.message, f.status, f.approved,
               f.approved_by, f.approved_at, f.completed_at, f.last_error, f.created_at, f.updated_at,
               l.id, l.name, l.email, l.phone, l.company, l.product_interest, l.message, l.category,
               l.ai_confidence, l.ai_reasoning, l.priority, l.status, l.created_at, l.updated_at
        FROM follow_ups f
        JOIN leads l ON l.id = f.lead_id
        WHERE f.id=$1
    `
	var f model.FollowUp
	var l model.Lead
	err := r.DB.QueryRow(query, id).Scan(
		&f.ID, &f.LeadID, &f.Type, &f.ScheduledAt, &f.Message, &f.Status, &f.Approved,
		&f.ApprovedBy, &f.ApprovedAt, &f.CompletedAt, &f.LastError, &f.CreatedAt, &f.UpdatedAt,
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.ProductInterest, &l.Message, &l.Category,
		&l.AIConfidence, &l.AIReasoning, &l.Priority, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &f, &l, nil
}

func (r *FollowUpRepository) List(leadID, status string) ([]model.FollowUp, error) {
	builder := psql.Select(followUpColumns).From("follow_ups").OrderBy("scheduled_at ASC")
	if leadID != "" {
		builder = builder.Where(sq.Eq{"lead_id": leadID})
	}
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFollowUps(rows)
}

// ListDue returns approved follow-ups whose scheduled time has passed.
// Nothing polls this; a cron-like caller asks for it explicitly.
func (r *FollowUpRepository) ListDue(now time.Time) ([]model.FollowUp, error) {
	query := `SELECT ` + followUpColumns + `
        FROM follow_ups
        WHERE status=$1 AND scheduled_at <= $2
        ORDER BY scheduled_at ASC`
	rows, err := r.DB.Query(query, model.StatusApproved, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFollowUps(rows)
}

func collectFollowUps(rows *sql.Rows) ([]model.FollowUp, error) {
	followUps := []model.FollowUp{}
	for rows.Next() {
		var f model.FollowUp
		if err := scanFollowUp(rows, &f); err != nil {
			return nil, err
		}
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

// MarkApproved performs the PENDING -> APPROVED edge.
func (r *FollowUpRepository) MarkApproved(id, approvedBy string) (int64, error) {
	query := `
        UPDATE follow_ups
        SET status=$1, approved=true, approved_by=$2, approved_at=NOW(), updated_at=NOW()
        WHERE id=$3 AND status=$4
    `
	res, err := r.DB.Exec(query, model.StatusApproved, approvedBy, id, model.StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkSent performs the APPROVED -> SENT edge and stamps completed_at.
func (r *FollowUpRepository) MarkSent(id string) (int64, error) {
	query := `
        UPDATE follow_ups
        SET status=$1, completed_at=NOW(), updated_at=NOW()
        WHERE id=$2 AND status=$3
    `
	res, err := r.DB.Exec(query, model.StatusSent, id, model.StatusApproved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkFailed performs the APPROVED -> FAILED edge. FAILED is terminal;
// there is no resend path.
func (r *FollowUpRepository) MarkFailed(id, lastError string) (int64, error) {
	query := `
        UPDATE follow_ups
        SET status=$1, last_error=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4
    `
	res, err := r.DB.Exec(query, model.StatusFailed, lastError, id, model.StatusApproved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
