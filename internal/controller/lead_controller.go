// internal/controller/lead_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "leadflow-backend/internal/errors"
	"leadflow-backend/internal/model"
	"leadflow-backend/internal/service"
)

type LeadController struct {
	LeadService *service.LeadService
}

// CreateLead ingests an inquiry, classifies it and materializes its
// follow-up schedule. The response carries the category decision so the
// caller sees the tier immediately.
func (c *LeadController) CreateLead(w http.ResponseWriter, r *http.Request) {
	var inq model.Inquiry
	if err := json.NewDecoder(r.Body).Decode(&inq); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if inq.Name == "" || inq.Email == "" || inq.Phone == "" || inq.ProductInterest == "" || inq.Message == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	lead, err := c.LeadService.CreateLead(r.Context(), inq)
	if err != nil {
		http.Error(w, "failed to create lead: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"lead": map[string]interface{}{
			"id":         lead.ID,
			"category":   lead.Category,
			"confidence": lead.AIConfidence,
			"reasoning":  lead.AIReasoning,
		},
	})
}

func (c *LeadController) ListLeads(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	status := r.URL.Query().Get("status")

	leads, err := c.LeadService.ListLeads(category, status)
	if err != nil {
		http.Error(w, "failed to fetch leads: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

// GetLead returns a lead joined with its follow-ups and per-status counts.
func (c *LeadController) GetLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := c.LeadService.GetLeadDetails(id)
	if err != nil {
		var notFound *appErrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch lead: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// UpdateLead applies a partial update; unknown fields are ignored.
func (c *LeadController) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	lead, err := c.LeadService.UpdateLead(id, fields)
	if err != nil {
		var notFound *appErrors.ErrLeadNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update lead: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}
