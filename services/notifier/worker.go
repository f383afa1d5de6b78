package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"stitchcms/pkg/bus"
	"stitchcms/pkg/mailer"
	"stitchcms/pkg/render"
)

var (
	mailSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stitch_notifier_mail_sent_total",
		Help: "Emails delivered by the notifier, by kind.",
	}, []string{"kind"})
	mailFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stitch_notifier_mail_failed_total",
		Help: "Email delivery failures recorded by the notifier, by kind.",
	}, []string{"kind"})
)

// Worker drains the mail stream and turns each job into one SMTP send
// plus one communication audit row.
type Worker struct {
	orm      *gorm.DB
	bus      *bus.Bus
	sender   mailer.Sender
	composer composer
}

func NewWorker(orm *gorm.DB, b *bus.Bus, sender mailer.Sender, renderer *render.Engine, frontendURL string) (*Worker, error) {
	if orm == nil {
		return nil, errors.New("orm is required")
	}
	if b == nil {
		return nil, errors.New("bus is required")
	}
	if sender == nil {
		return nil, errors.New("sender is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	return &Worker{
		orm:      orm,
		bus:      b,
		sender:   sender,
		composer: composer{renderer: renderer, frontendURL: frontendURL},
	}, nil
}

// Start subscribes the durable consumer. The returned closer detaches
// the subscription; the stream itself keeps any undelivered jobs.
func (w *Worker) Start(ctx context.Context) (io.Closer, error) {
	return w.bus.Subscribe(ctx, bus.MailSubject, bus.NotifierDurable, w.handle)
}

// handle processes one job. Delivery failures are recorded and logged
// but never returned: a failed send must not park the job for
// redelivery, and must never block the rest of the queue.
func (w *Worker) handle(ctx context.Context, data []byte) error {
	var job bus.MailJob
	if err := json.Unmarshal(data, &job); err != nil {
		log.Error().Err(err).Msg("discarding undecodable mail job")
		return nil
	}

	orm := w.orm.WithContext(ctx)

	var event eventModel
	if err := orm.First(&event, "id = ?", job.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("job_id", job.ID).Int64("event_id", job.EventID).Msg("mail job references missing event")
			return nil
		}
		return err
	}

	var rsvp rsvpModel
	if err := orm.First(&rsvp, "id = ?", job.RSVPID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("job_id", job.ID).Int64("rsvp_id", job.RSVPID).Msg("mail job references missing rsvp")
			return nil
		}
		return err
	}

	record, delivered, err := w.deliver(ctx, job, event, rsvp)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("discarding uncomposable mail job")
		return nil
	}

	if err := orm.Create(&record).Error; err != nil {
		return fmt.Errorf("record communication: %w", err)
	}

	if delivered {
		if err := w.trackDelivery(orm, job, rsvp, *record.SentAt); err != nil {
			return err
		}
	}
	return nil
}

// deliver composes and sends one job, returning the audit row to
// persist and whether the send succeeded. Exactly one row comes back
// per attempt; only an uncomposable job returns an error.
func (w *Worker) deliver(ctx context.Context, job bus.MailJob, event eventModel, rsvp rsvpModel) (communicationModel, bool, error) {
	subject, body, err := w.composer.compose(job, event, rsvp)
	if err != nil {
		return communicationModel{}, false, err
	}

	sendErr := w.sender.Send(ctx, rsvp.Email, subject, body)

	now := time.Now().UTC()
	status := "sent"
	if sendErr != nil {
		status = "failed"
		mailFailed.WithLabelValues(job.Kind).Inc()
		log.Error().Err(sendErr).
			Str("job_id", job.ID).
			Str("kind", job.Kind).
			Str("recipient", rsvp.Email).
			Msg("mail delivery failed")
	} else {
		mailSent.WithLabelValues(job.Kind).Inc()
	}

	record := communicationModel{
		EventID:        &event.ID,
		RSVPID:         &rsvp.ID,
		Type:           job.Kind,
		Subject:        subject,
		Message:        body,
		RecipientEmail: rsvp.Email,
		RecipientName:  rsvp.Name,
		SentAt:         &now,
		DeliveryStatus: status,
	}
	return record, sendErr == nil, nil
}

// trackDelivery updates the RSVP bookkeeping columns after a
// successful send.
func (w *Worker) trackDelivery(orm *gorm.DB, job bus.MailJob, rsvp rsvpModel, now time.Time) error {
	switch job.Kind {
	case bus.MailKindInvitation:
		return orm.Model(&rsvpModel{}).
			Where("id = ?", rsvp.ID).
			Update("invitation_sent_at", now).Error
	case bus.MailKindReminder:
		return orm.Model(&rsvpModel{}).
			Where("id = ?", rsvp.ID).
			Updates(map[string]any{
				"reminder_count":     gorm.Expr("reminder_count + 1"),
				"last_reminder_sent": now,
			}).Error
	}
	return nil
}
