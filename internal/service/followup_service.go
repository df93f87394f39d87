// internal/service/followup_service.go
package service

import (
	"log"
	"time"

	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/mailer"
	"leadflow-backend/internal/model"
	"leadflow-backend/internal/repository"
)

// FollowUpService owns the follow-up state machine:
//
//	PENDING --approve--> APPROVED --dispatch(ok)--> SENT
//	                     APPROVED --dispatch(err)--> FAILED
//
// SENT and FAILED are terminal. All transitions go through conditional
// repository updates guarded on the prior status, so concurrent callers
// cannot skip or reverse an edge.
type FollowUpService struct {
	FollowUpRepo repository.FollowUpRepositoryInterface
	LeadRepo     repository.LeadRepositoryInterface
	Sender       mailer.Sender
}

// Approve is the only way out of PENDING. Re-approving an already-approved
// record is a no-op success; approving a SENT or FAILED record is rejected.
func (s *FollowUpService) Approve(id, approvedBy string) (*model.FollowUp, error) {
	rows, err := s.FollowUpRepo.MarkApproved(id, approvedBy)
	if err != nil {
		return nil, err
	}

	followUp, err := s.FollowUpRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if followUp == nil {
		return nil, appErrors.NewFollowUpNotFound(id)
	}

	if rows == 0 {
		if followUp.Status == model.StatusApproved {
			return followUp, nil
		}
		return nil, appErrors.NewInvalidTransition(id, string(followUp.Status), string(model.StatusApproved))
	}

	return followUp, nil
}

// Dispatch sends an approved follow-up through the delivery collaborator
// exactly once. On delivery failure the FAILED transition is recorded first
// and the error is still returned: callers must not assume an error means
// the record was untouched. An unapproved record is rejected with no
// delivery attempt and no mutation.
func (s *FollowUpService) Dispatch(id string) (*model.FollowUp, error) {
	followUp, lead, err := s.FollowUpRepo.GetWithLead(id)
	if err != nil {
		return nil, err
	}
	if followUp == nil {
		return nil, appErrors.NewFollowUpNotFound(id)
	}

	if !followUp.Approved || followUp.Status == model.StatusPending {
		return nil, appErrors.ErrNotApproved
	}
	if followUp.Status != model.StatusApproved {
		return nil, appErrors.NewInvalidTransition(id, string(followUp.Status), string(model.StatusSent))
	}

	subject := mailer.Subject(lead)
	body := mailer.ResolveMessage(followUp.Message, lead)

	if sendErr := s.Sender.Send(lead.Email, lead.Name, subject, body); sendErr != nil {
		if _, markErr := s.FollowUpRepo.MarkFailed(id, sendErr.Error()); markErr != nil {
			log.Println("follow-up dispatch: could not record FAILED state:", markErr)
		}
		failed, _ := s.FollowUpRepo.GetByID(id)
		return failed, appErrors.NewDeliveryFailed(id, sendErr)
	}

	rows, err := s.FollowUpRepo.MarkSent(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// A concurrent caller moved the record while the send was in flight.
		current, _ := s.FollowUpRepo.GetByID(id)
		from := string(model.StatusApproved)
		if current != nil {
			from = string(current.Status)
		}
		return current, appErrors.NewInvalidTransition(id, from, string(model.StatusSent))
	}

	return s.FollowUpRepo.GetByID(id)
}

// SendImmediately approves and dispatches in one call, for a reviewer who
// wants to fire right away. If the dispatch fails the approval stands; the
// record ends up FAILED, not back in PENDING.
func (s *FollowUpService) SendImmediately(id, approvedBy string) (*model.FollowUp, error) {
	if _, err := s.Approve(id, approvedBy); err != nil {
		return nil, err
	}
	return s.Dispatch(id)
}

func (s *FollowUpService) ListFollowUps(leadID, status string) ([]model.FollowUp, error) {
	return s.FollowUpRepo.List(leadID, status)
}

// ListDue returns approved follow-ups whose scheduled time has passed.
func (s *FollowUpService) ListDue() ([]model.FollowUp, error) {
	return s.FollowUpRepo.ListDue(time.Now())
}
