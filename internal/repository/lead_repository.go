// internal/repository/lead_repository.go
package repository

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"leadflow-backend/internal/model"
)

// LeadRepositoryInterface defines methods used by services
type LeadRepositoryInterface interface {
	Create(l *model.Lead) error
	GetByID(id string) (*model.Lead, error)
	List(category, status string) ([]model.Lead, error)
	Update(id string, updates map[string]any) (*model.Lead, error)
	GetFollowUpStats(leadID string) (map[string]int, error)
}

type LeadRepository struct {
	DB *sql.DB
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const leadColumns = `id, name, email, phone, company, product_interest, message, category,
       ai_confidence, ai_reasoning, priority, status, created_at, updated_at`

func (r *LeadRepository) Create(l *model.Lead) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	if l.Status == "" {
		l.Status = "NEW"
	}
	query := `
        INSERT INTO leads (id, name, email, phone, company, product_interest, message, category,
                           ai_confidence, ai_reasoning, priority, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.DB.Exec(query,
		l.ID, l.Name, l.Email, l.Phone, l.Company, l.ProductInterest, l.Message, l.Category,
		l.AIConfidence, l.AIReasoning, l.Priority, l.Status, l.CreatedAt,
	)
	return err
}

func (r *LeadRepository) GetByID(id string) (*model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	var l model.Lead
	err := r.DB.QueryRow(query, id).Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.ProductInterest, &l.Message, &l.Category,
		&l.AIConfidence, &l.AIReasoning, &l.Priority, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// List returns leads newest first, optionally filtered by category and status.
func (r *LeadRepository) List(category, status string) ([]model.Lead, error) {
	builder := psql.Select(leadColumns).From("leads").OrderBy("created_at DESC")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
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

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.ProductInterest, &l.Message, &l.Category,
			&l.AIConfidence, &l.AIReasoning, &l.Priority, &l.Status, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// Update applies a partial column update and returns the fresh row.
// Callers are responsible for whitelisting the columns they pass in.
func (r *LeadRepository) Update(id string, updates map[string]any) (*model.Lead, error) {
	if len(updates) == 0 {
		return r.GetByID(id)
	}

	builder := psql.Update("leads").Where(sq.Eq{"id": id})
	for col, val := range updates {
		builder = builder.Set(col, val)
	}
	builder = builder.Set("updated_at", time.Now())

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.Exec(query, args...); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetFollowUpStats counts a lead's follow-ups grouped by status.
func (r *LeadRepository) GetFollowUpStats(leadID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM follow_ups WHERE lead_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		"total":    0,
		"PENDING":  0,
		"APPROVED": 0,
		"SENT":     0,
		"FAILED":   0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		if _, ok := stats[status]; ok {
			stats[status] = count
		}
		stats["total"] += count
	}
	return stats, rows.Err()
}
