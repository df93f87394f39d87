// internal/model/lead.go
package model

import "time"

// Category is the urgency tier assigned to a lead.
type Category string

const (
	CategoryHot  Category = "HOT"
	CategoryWarm Category = "WARM"
	CategoryCold Category = "COLD"
	// CategoryPending marks a lead that has not been classified yet.
	// Neither classifier path ever produces it.
	CategoryPending Category = "PENDING"
)

// Valid reports whether c is one of the three classifier outputs.
// PENDING is a storage placeholder, not a classification.
func (c Category) Valid() bool {
	return c == CategoryHot || c == CategoryWarm || c == CategoryCold
}

// Inquiry is the raw intake form submitted by a prospect.
type Inquiry struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Company         *string `json:"company,omitempty"`
	ProductInterest string  `json:"product_interest"`
	Message         string  `json:"message"`
}

// ClassificationResult is the triple produced once per inquiry.
// Confidence and Reasoning are advisory; nothing downstream branches on them.
type ClassificationResult struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

type Lead struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	Company         *string    `db:"company" json:"company,omitempty"`
	ProductInterest string     `db:"product_interest" json:"product_interest"`
	Message         string     `db:"message" json:"message"`
	Category        Category   `db:"category" json:"category"`
	AIConfidence    float64    `db:"ai_confidence" json:"ai_confidence"`
	AIReasoning     string     `db:"ai_reasoning" json:"ai_reasoning"`
	Priority        string     `db:"priority" json:"priority"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// PriorityFor maps an urgency tier to the lead priority stored alongside it.
func PriorityFor(c Category) string {
	switch c {
	case CategoryHot:
		return "HIGH"
	case CategoryWarm:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
