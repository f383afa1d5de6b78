package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"stitchcms/pkg/db"
)

func (a *API) handleNotifySendInvitations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Emails []string `json:"emails"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Emails) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("at least one email is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	queued, err := a.invites.SendInvitations(ctx, id, req.Emails, rsvpSourceBulk)
	switch {
	case errors.Is(err, errEventNotFound):
		respondError(w, http.StatusNotFound, err)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":            "Invitations queued",
		"invitations_queued": queued,
	})
}

func (a *API) handleSendReminders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var event eventModel
	err = orm.First(&event, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errEventNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	daysBefore := int(time.Until(event.StartDate).Hours() / 24)
	if daysBefore < 0 {
		daysBefore = 0
	}

	queued, err := a.invites.EnqueueReminders(ctx, id, daysBefore, false, time.Time{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":          "Reminders queued",
		"reminders_queued": queued,
	})
}

func (a *API) handleListCommunications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	offset, limit := pagination(r)

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var rows []communicationModel
	err = a.store.ORM.WithContext(ctx).
		Where("event_id = ?", id).
		Order("sent_at DESC NULLS LAST").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]Communication, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleNotificationStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	type statsRow struct {
		TotalSent int `db:"total_sent"`
		Delivered int `db:"delivered"`
		Failed    int `db:"failed"`
		Opened    int `db:"opened"`
		Clicked   int `db:"clicked"`
	}
	var stats statsRow
	err = db.Get(r.Context(), a.store.DB, &stats, `
SELECT COUNT(*)                                                 AS total_sent,
       COUNT(*) FILTER (WHERE delivery_status = 'sent')         AS delivered,
       COUNT(*) FILTER (WHERE delivery_status = 'failed')       AS failed,
       COUNT(opened_at)                                         AS opened,
       COUNT(clicked_at)                                        AS clicked
FROM communications WHERE event_id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	rate := func(part, whole int) float64 {
		if whole == 0 {
			return 0
		}
		return float64(part) / float64(whole) * 100
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"event_id":    id,
		"total_sent":  stats.TotalSent,
		"delivered":   stats.Delivered,
		"failed":      stats.Failed,
		"opened":      stats.Opened,
		"clicked":     stats.Clicked,
		"bounce_rate": rate(stats.Failed, stats.TotalSent),
		"open_rate":   rate(stats.Opened, stats.Delivered),
		"click_rate":  rate(stats.Clicked, stats.Opened),
	})
}

func (a *API) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []map[string]any{
		{
			"id":          "invitation",
			"name":        "Event Invitation",
			"description": "Initial invitation with RSVP links",
			"variables":   []string{"event_title", "event_date", "event_location", "rsvp_links"},
		},
		{
			"id":          "reminder",
			"name":        "Event Reminder",
			"description": "Countdown reminder for guests who have not responded",
			"variables":   []string{"event_title", "event_date", "days_before", "rsvp_links"},
		},
		{
			"id":          "confirmation",
			"name":        "RSVP Confirmation",
			"description": "Thank-you message after a guest responds",
			"variables":   []string{"event_title", "rsvp_status", "guest_count"},
		},
	})
}

func (a *API) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	body, err := a.renderer.Render("test.tmpl", nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if err := a.mailer.Send(r.Context(), req.Email, "Stitch CMS Test Email", body); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Test email sent successfully"})
}
