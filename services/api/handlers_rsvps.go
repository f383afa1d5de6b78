package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var errRSVPNotFound = errors.New("rsvp not found")

type rsvpCreateRequest struct {
	Email               string `json:"email"`
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Company             string `json:"company"`
	GuestCount          *int   `json:"guest_count"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	SpecialRequests     string `json:"special_requests"`
	Notes               string `json:"notes"`
}

type rsvpUpdateRequest struct {
	Status              *string `json:"status"`
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Company             *string `json:"company"`
	GuestCount          *int    `json:"guest_count"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	SpecialRequests     *string `json:"special_requests"`
	Notes               *string `json:"notes"`
}

func (a *API) handleCreateRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req rsvpCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("email and name are required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var event eventModel
	err = orm.First(&event, "id = ?", eventID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errEventNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	var existing int64
	if err := orm.Model(&rsvpModel{}).
		Where("event_id = ? AND email = ?", eventID, req.Email).
		Count(&existing).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		respondError(w, http.StatusBadRequest, errors.New("an RSVP already exists for this email"))
		return
	}

	guests := 1
	if req.GuestCount != nil && *req.GuestCount >= 1 {
		guests = *req.GuestCount
	}

	model := rsvpModel{
		EventID:             eventID,
		Email:               req.Email,
		Name:                req.Name,
		Phone:               req.Phone,
		Company:             req.Company,
		Status:              rsvpStatusPending,
		GuestCount:          guests,
		DietaryRestrictions: req.DietaryRestrictions,
		SpecialRequests:     req.SpecialRequests,
		Source:              rsvpSourceManual,
		Notes:               req.Notes,
	}
	if err := orm.Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "RSVP created successfully",
		"rsvp_id": model.ID,
	})
}

func (a *API) handleUpdateRSVP(w http.ResponseWriter, r *http.Request) {
	rsvpID, err := pathID(chi.URLParam(r, "rsvp_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req rsvpUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Status != nil && !validRSVPStatus(*req.Status) {
		respondError(w, http.StatusBadRequest, fmt.Errorf("invalid status %q", *req.Status))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var rsvp rsvpModel
	err = orm.First(&rsvp, "id = ?", rsvpID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errRSVPNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]any{}
	responded := false
	if req.Status != nil {
		updates["status"] = *req.Status
		updates["responded_at"] = time.Now().UTC()
		responded = *req.Status != rsvpStatusPending
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.GuestCount != nil && *req.GuestCount >= 1 {
		updates["guest_count"] = *req.GuestCount
	}
	if req.DietaryRestrictions != nil {
		updates["dietary_restrictions"] = *req.DietaryRestrictions
	}
	if req.SpecialRequests != nil {
		updates["special_requests"] = *req.SpecialRequests
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := orm.Model(&rsvp).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	// Confirmation is re-sent on every status call, including repeat
	// submissions of the same status.
	if responded {
		if err := a.invites.EnqueueConfirmation(ctx, rsvp.EventID, rsvp.ID); err != nil {
			log.Warn().Err(err).Int64("rsvp_id", rsvp.ID).Msg("confirmation enqueue failed")
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "RSVP updated successfully"})
}
