package api

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stitchcms/pkg/bus"
)

var errEventNotFound = errors.New("event not found")

// InvitationService enqueues outbound mail jobs for an event's guest
// list. Both the event routes and the notification routes share one
// instance so invitation semantics cannot drift between the two.
type InvitationService struct {
	store *Store
}

func NewInvitationService(store *Store) *InvitationService {
	return &InvitationService{store: store}
}

func (s *InvitationService) enqueue(ctx context.Context, job bus.MailJob) error {
	job.ID = uuid.New().String()
	job.EnqueuedAt = time.Now().UTC()
	return s.store.Bus.Publish(ctx, bus.MailSubject, job)
}

// SendInvitations creates one RSVP per fresh recipient and queues an
// invitation job for each. Emails that already hold an RSVP for the
// event are skipped. Returns the number of invitations queued.
func (s *InvitationService) SendInvitations(ctx context.Context, eventID int64, emails []string, source string) (int, error) {
	orm := s.store.ORM.WithContext(ctx)

	var event eventModel
	err := orm.First(&event, "id = ?", eventID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, errEventNotFound
	case err != nil:
		return 0, err
	}

	now := time.Now().UTC()
	queued := 0
	for _, email := range emails {
		var existing int64
		if err := orm.Model(&rsvpModel{}).
			Where("event_id = ? AND email = ?", eventID, email).
			Count(&existing).Error; err != nil {
			return queued, err
		}
		if existing > 0 {
			continue
		}

		guest := rsvpModel{
			EventID:          eventID,
			Email:            email,
			Name:             email,
			Status:           rsvpStatusPending,
			GuestCount:       1,
			InvitationSentAt: &now,
			Source:           source,
		}
		if err := orm.Create(&guest).Error; err != nil {
			return queued, err
		}

		job := bus.MailJob{
			Kind:    bus.MailKindInvitation,
			EventID: eventID,
			RSVPID:  guest.ID,
		}
		if err := s.enqueue(ctx, job); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}

// EnqueueReminders queues one reminder job per guest. onlyPending
// restricts the pass to guests who have not yet responded, which is
// how the scheduled dispatch runs; the manual endpoint reminds
// everyone. A non-zero notRemindedSince skips guests whose last
// reminder was delivered at or after that instant, so a repeated
// scheduled pass cannot queue the same day's reminder twice.
// daysBefore is carried through to the rendered email.
func (s *InvitationService) EnqueueReminders(ctx context.Context, eventID int64, daysBefore int, onlyPending bool, notRemindedSince time.Time) (int, error) {
	orm := s.store.ORM.WithContext(ctx)

	var event eventModel
	err := orm.First(&event, "id = ?", eventID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, errEventNotFound
	case err != nil:
		return 0, err
	}

	q := orm.Where("event_id = ?", eventID)
	if onlyPending {
		q = q.Where("status = ?", rsvpStatusPending)
	}
	var guests []rsvpModel
	if err := q.Find(&guests).Error; err != nil {
		return 0, err
	}

	queued := 0
	for _, g := range guests {
		if alreadyReminded(g.LastReminderSent, notRemindedSince) {
			continue
		}
		job := bus.MailJob{
			Kind:       bus.MailKindReminder,
			EventID:    eventID,
			RSVPID:     g.ID,
			DaysBefore: daysBefore,
		}
		if err := s.enqueue(ctx, job); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}

// EnqueueConfirmation queues a confirmation email for a single guest,
// typically right after they respond.
func (s *InvitationService) EnqueueConfirmation(ctx context.Context, eventID, rsvpID int64) error {
	return s.enqueue(ctx, bus.MailJob{
		Kind:    bus.MailKindConfirmation,
		EventID: eventID,
		RSVPID:  rsvpID,
	})
}

// startOfDay truncates to UTC midnight.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// alreadyReminded reports whether a reminder was delivered at or
// after the cutoff. A zero cutoff disables the check.
func alreadyReminded(lastSent *time.Time, since time.Time) bool {
	if since.IsZero() || lastSent == nil {
		return false
	}
	return !lastSent.Before(since)
}

// reminderDue reports which configured offset, if any, makes an event
// due for reminders on the given day. An event is due when today is
// exactly start_date minus one of its offsets, compared by calendar
// day in UTC.
func reminderDue(start time.Time, offsets []int, today time.Time) (int, bool) {
	startDay := startOfDay(start)
	todayDay := startOfDay(today)
	for _, off := range offsets {
		if off < 0 {
			continue
		}
		if startDay.AddDate(0, 0, -off).Equal(todayDay) {
			return off, true
		}
	}
	return 0, false
}

// EnqueueDueReminders scans published upcoming events and queues
// reminders for every event whose schedule hits today. Guests already
// reminded today are skipped, so the pass is safe to rerun.
func (s *InvitationService) EnqueueDueReminders(ctx context.Context, now time.Time) (int, error) {
	orm := s.store.ORM.WithContext(ctx)

	var events []eventModel
	err := orm.Where("status = ? AND send_reminders AND start_date > ?", eventStatusPublished, now).
		Find(&events).Error
	if err != nil {
		return 0, err
	}

	queued := 0
	today := startOfDay(now)
	for _, ev := range events {
		off, due := reminderDue(ev.StartDate, reminderOffsets(ev.ReminderDaysBefore), now)
		if !due {
			continue
		}
		n, err := s.EnqueueReminders(ctx, ev.ID, off, true, today)
		queued += n
		if err != nil {
			return queued, err
		}
	}
	return queued, nil
}
