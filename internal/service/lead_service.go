// internal/service/lead_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadflow-backend/internal/classifier"
	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/model"
	"leadflow-backend/internal/repository"
	"leadflow-backend/internal/schedule"
)

// LeadService owns lead intake: classify the inquiry, persist the lead, and
// materialize its full follow-up schedule up front.
type LeadService struct {
	LeadRepo     repository.LeadRepositoryInterface
	FollowUpRepo repository.FollowUpRepositoryInterface
	Classifier   *classifier.Classifier
}

// LeadDetails is a lead joined with its follow-ups and per-status counts.
type LeadDetails struct {
	model.Lead
	FollowUps []model.FollowUp `json:"follow_ups"`
	Stats     map[string]int   `json:"stats"`
}

// CreateLead classifies the inquiry and persists the lead together with every
// follow-up of its category's sequence. Classification cannot fail: a dead
// model path resolves to the rule-based tier, so intake always succeeds with
// some category.
func (s *LeadService) CreateLead(ctx context.Context, inq model.Inquiry) (*model.Lead, error) {
	result := s.Classifier.Classify(ctx, inq)
	now := time.Now()

	lead := &model.Lead{
		ID:              uuid.NewString(),
		Name:            inq.Name,
		Email:           inq.Email,
		Phone:           inq.Phone,
		Company:         inq.Company,
		ProductInterest: inq.ProductInterest,
		Message:         inq.Message,
		Category:        result.Category,
		AIConfidence:    result.Confidence,
		AIReasoning:     result.Reasoning,
		Priority:        model.PriorityFor(result.Category),
		Status:          "NEW",
		CreatedAt:       now,
	}

	if err := s.LeadRepo.Create(lead); err != nil {
		return nil, err
	}

	items := schedule.ForCategory(result.Category)
	followUps := make([]*model.FollowUp, 0, len(items))
	for _, item := range items {
		followUps = append(followUps, &model.FollowUp{
			ID:          uuid.NewString(),
			LeadID:      lead.ID,
			Type:        item.Type,
			ScheduledAt: now.AddDate(0, 0, item.DaysFromNow),
			Message:     item.Message,
			Status:      model.StatusPending,
			Approved:    false,
			CreatedAt:   now,
		})
	}

	if err := s.FollowUpRepo.CreateBatch(followUps); err != nil {
		return nil, err
	}

	return lead, nil
}

func (s *LeadService) ListLeads(category, status string) ([]model.Lead, error) {
	return s.LeadRepo.List(category, status)
}

// GetLeadDetails fetches a lead with its follow-ups and status counts.
func (s *LeadService) GetLeadDetails(id string) (*LeadDetails, error) {
	lead, err := s.LeadRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, appErrors.NewLeadNotFound(id)
	}

	followUps, err := s.FollowUpRepo.List(id, "")
	if err != nil {
		return nil, err
	}

	stats, err := s.LeadRepo.GetFollowUpStats(id)
	if err != nil {
		return nil, err
	}

	return &LeadDetails{Lead: *lead, FollowUps: followUps, Stats: stats}, nil
}

// leadColumnsByField maps request field names to lead table columns for
// partial updates. Anything not listed here is silently dropped.
var leadColumnsByField = map[string]string{
	"name":             "name",
	"email":            "email",
	"phone":            "phone",
	"company":          "company",
	"product_interest": "product_interest",
	"message":          "message",
	"category":         "category",
	"status":           "status",
	"priority":         "priority",
}

// UpdateLead applies a whitelisted partial update.
func (s *LeadService) UpdateLead(id string, fields map[string]any) (*model.Lead, error) {
	updates := map[string]any{}
	for field, value := range fields {
		if col, ok := leadColumnsByField[field]; ok && value != nil {
			updates[col] = value
		}
	}

	lead, err := s.LeadRepo.Update(id, updates)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, appErrors.NewLeadNotFound(id)
	}
	return lead, nil
}
