// internal/controller/followup_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/model"
	"leadflow-backend/internal/service"
)

// DispatchQueue is the publish side of the dispatch pipeline; the
// in-memory subscriber or the RabbitMQ worker consumes the other end.
type DispatchQueue interface {
	Publish(topic string, payload any) error
}

type FollowUpController struct {
	FollowUpService *service.FollowUpService
	Queue           DispatchQueue
	DispatchTopic   string
}

func (c *FollowUpController) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("lead_id")
	status := r.URL.Query().Get("status")

	followUps, err := c.FollowUpService.ListFollowUps(leadID, status)
	if err != nil {
		http.Error(w, "failed to fetch follow-ups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(followUps)
}

// ListDue returns approved follow-ups whose scheduled time has passed.
func (c *FollowUpController) ListDue(w http.ResponseWriter, r *http.Request) {
	due, err := c.FollowUpService.ListDue()
	if err != nil {
		http.Error(w, "failed to fetch due follow-ups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(due)
}

// Approve moves a follow-up out of PENDING on behalf of a reviewer.
func (c *FollowUpController) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		ApprovedBy string `json:"approved_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.ApprovedBy == "" {
		http.Error(w, "approved_by is required", http.StatusBadRequest)
		return
	}

	followUp, err := c.FollowUpService.Approve(id, body.ApprovedBy)
	if err != nil {
		writeFollowUpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(followUp)
}

// Dispatch sends one approved follow-up synchronously.
func (c *FollowUpController) Dispatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	followUp, err := c.FollowUpService.Dispatch(id)
	if err != nil {
		writeDispatchError(w, followUp, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(followUp)
}

// SendNow approves and dispatches in one call.
func (c *FollowUpController) SendNow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		ApprovedBy string `json:"approved_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.ApprovedBy == "" {
		http.Error(w, "approved_by is required", http.StatusBadRequest)
		return
	}

	followUp, err := c.FollowUpService.SendImmediately(id, body.ApprovedBy)
	if err != nil {
		writeDispatchError(w, followUp, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(followUp)
}

// DispatchDue queues every due approved follow-up for delivery. Meant for a
// cron-like caller; each item is dispatched by a queue consumer.
func (c *FollowUpController) DispatchDue(w http.ResponseWriter, r *http.Request) {
	due, err := c.FollowUpService.ListDue()
	if err != nil {
		http.Error(w, "failed to fetch due follow-ups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	queued := 0
	for _, f := range due {
		if err := c.Queue.Publish(c.DispatchTopic, f.ID); err != nil {
			log.Println("failed to enqueue follow-up", f.ID, ":", err)
			continue
		}
		queued++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"due":    len(due),
		"queued": queued,
	})
}

func writeFollowUpError(w http.ResponseWriter, err error) {
	var notFound *appErrors.ErrFollowUpNotFound
	var invalid *appErrors.ErrInvalidTransition

	switch {
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &invalid):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, appErrors.ErrNotApproved):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeDispatchError reports a failed dispatch. A delivery failure still
// mutated the record to FAILED, so the response carries the record state
// alongside the error.
func writeDispatchError(w http.ResponseWriter, followUp *model.FollowUp, err error) {
	var delivery *appErrors.ErrDeliveryFailed
	if errors.As(err, &delivery) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":     err.Error(),
			"follow_up": followUp,
		})
		return
	}
	writeFollowUpError(w, err)
}
