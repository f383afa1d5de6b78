package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"stitchcms/pkg/db"
)

type eventCreateRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	EventType          string     `json:"event_type"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Location           string     `json:"location"`
	MaxAttendees       *int       `json:"max_attendees"`
	RSVPDeadline       *time.Time `json:"rsvp_deadline"`
	RequireApproval    bool       `json:"require_approval"`
	AllowGuests        bool       `json:"allow_guests"`
	SendReminders      *bool      `json:"send_reminders"`
	ReminderDaysBefore []int      `json:"reminder_days_before"`
	Status             string     `json:"status"`
}

type eventUpdateRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	EventType          *string    `json:"event_type"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	Location           *string    `json:"location"`
	MaxAttendees       *int       `json:"max_attendees"`
	RSVPDeadline       *time.Time `json:"rsvp_deadline"`
	RequireApproval    *bool      `json:"require_approval"`
	AllowGuests        *bool      `json:"allow_guests"`
	SendReminders      *bool      `json:"send_reminders"`
	ReminderDaysBefore []int      `json:"reminder_days_before"`
	Status             *string    `json:"status"`
}

const eventSummaryQuery = `
SELECT e.id, e.title, e.description, e.event_type, e.start_date, e.end_date,
       e.location, e.max_attendees, e.rsvp_deadline, e.status, e.created_at,
       COUNT(r.id)                                        AS total_rsvps,
       COUNT(r.id) FILTER (WHERE r.status = 'accepted')   AS accepted,
       COUNT(r.id) FILTER (WHERE r.status = 'declined')   AS declined,
       COUNT(r.id) FILTER (WHERE r.status = 'pending')    AS pending
FROM events e
LEFT JOIN rsvps r ON r.event_id = e.id
%s
GROUP BY e.id
ORDER BY e.start_date DESC
LIMIT $1 OFFSET $2`

type eventSummaryRow struct {
	ID           int64      `db:"id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	EventType    string     `db:"event_type"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	Location     string     `db:"location"`
	MaxAttendees *int       `db:"max_attendees"`
	RSVPDeadline *time.Time `db:"rsvp_deadline"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	TotalRSVPs   int        `db:"total_rsvps"`
	Accepted     int        `db:"accepted"`
	Declined     int        `db:"declined"`
	Pending      int        `db:"pending"`
}

func (a *API) handleListEvents(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	query := fmt.Sprintf(eventSummaryQuery, "")
	args := []any{limit, offset}
	if status := r.URL.Query().Get("status"); status != "" {
		query = fmt.Sprintf(eventSummaryQuery, "WHERE e.status = $3")
		args = append(args, status)
	}

	var rows []eventSummaryRow
	if err := db.Select(r.Context(), a.store.DB, &rows, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]EventSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, EventSummary{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description,
			EventType:    row.EventType,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			Location:     row.Location,
			MaxAttendees: row.MaxAttendees,
			RSVPDeadline: row.RSVPDeadline,
			Status:       row.Status,
			TotalRSVPs:   row.TotalRSVPs,
			Accepted:     row.Accepted,
			Declined:     row.Declined,
			Pending:      row.Pending,
			CreatedAt:    row.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}
	if req.StartDate.IsZero() {
		respondError(w, http.StatusBadRequest, errors.New("start_date is required"))
		return
	}

	model := eventModel{
		Title:              req.Title,
		Description:        req.Description,
		EventType:          req.EventType,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Location:           req.Location,
		MaxAttendees:       req.MaxAttendees,
		RSVPDeadline:       req.RSVPDeadline,
		RequireApproval:    req.RequireApproval,
		AllowGuests:        req.AllowGuests,
		SendReminders:      true,
		ReminderDaysBefore: encodeOffsets(req.ReminderDaysBefore),
		Status:             eventStatusDraft,
	}
	if req.SendReminders != nil {
		model.SendReminders = *req.SendReminders
	}
	if req.EventType == "" {
		model.EventType = "meeting"
	}
	if req.Status != "" {
		model.Status = req.Status
	}
	if user, ok := userFrom(r.Context()); ok {
		model.CreatedBy = &user.ID
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	if err := a.store.ORM.WithContext(ctx).Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Event created successfully",
		"event_id": model.ID,
	})
}

func (a *API) handleGetEvent(w http.ResponseWriter, r *http.Request) {
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

	var guests []rsvpModel
	if err := orm.Where("event_id = ?", id).Order("created_at DESC").Find(&guests).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	rsvps := make([]RSVP, 0, len(guests))
	for _, g := range guests {
		rsvps = append(rsvps, g.toAPI())
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"event": event.toAPI(),
		"rsvps": rsvps,
	})
}

func (a *API) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req eventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
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

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.EventType != nil {
		updates["event_type"] = *req.EventType
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.MaxAttendees != nil {
		updates["max_attendees"] = *req.MaxAttendees
	}
	if req.RSVPDeadline != nil {
		updates["rsvp_deadline"] = *req.RSVPDeadline
	}
	if req.RequireApproval != nil {
		updates["require_approval"] = *req.RequireApproval
	}
	if req.AllowGuests != nil {
		updates["allow_guests"] = *req.AllowGuests
	}
	if req.SendReminders != nil {
		updates["send_reminders"] = *req.SendReminders
	}
	if req.ReminderDaysBefore != nil {
		updates["reminder_days_before"] = encodeOffsets(req.ReminderDaysBefore)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := orm.Model(&event).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Event updated successfully"})
}

func (a *API) handleEventSendInvitations(w http.ResponseWriter, r *http.Request) {
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
	queued, err := a.invites.SendInvitations(ctx, id, req.Emails, rsvpSourceManual)
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

const analyticsTimelineQuery = `
SELECT responded_at::date AS day, COUNT(*) AS responses
FROM rsvps
WHERE event_id = $1 AND responded_at IS NOT NULL
GROUP BY responded_at::date
ORDER BY day`

type timelineRow struct {
	Day       time.Time `db:"day"`
	Responses int       `db:"responses"`
}

func (a *API) handleEventAnalytics(w http.ResponseWriter, r *http.Request) {
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

	type statsRow struct {
		Total       int `db:"total"`
		Accepted    int `db:"accepted"`
		Declined    int `db:"declined"`
		Pending     int `db:"pending"`
		Maybe       int `db:"maybe"`
		TotalGuests int `db:"total_guests"`
	}
	var stats statsRow
	err = db.Get(r.Context(), a.store.DB, &stats, `
SELECT COUNT(*)                                                       AS total,
       COUNT(*) FILTER (WHERE status = 'accepted')                    AS accepted,
       COUNT(*) FILTER (WHERE status = 'declined')                    AS declined,
       COUNT(*) FILTER (WHERE status = 'pending')                     AS pending,
       COUNT(*) FILTER (WHERE status = 'maybe')                       AS maybe,
       COALESCE(SUM(guest_count), 0)                                  AS total_guests
FROM rsvps WHERE event_id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	var timeline []timelineRow
	if err := db.Select(r.Context(), a.store.DB, &timeline, analyticsTimelineQuery, id); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	responseRate := float64(stats.Accepted) / float64(max(stats.Total, 1)) * 100

	points := make([]map[string]any, 0, len(timeline))
	for _, p := range timeline {
		points = append(points, map[string]any{
			"date":      p.Day.Format("2006-01-02"),
			"responses": p.Responses,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"event_id":      event.ID,
		"event_title":   event.Title,
		"total_rsvps":   stats.Total,
		"accepted":      stats.Accepted,
		"declined":      stats.Declined,
		"pending":       stats.Pending,
		"maybe":         stats.Maybe,
		"total_guests":  stats.TotalGuests,
		"response_rate": responseRate,
		"timeline":      points,
	})
}
