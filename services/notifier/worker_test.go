package notifier

import (
	"context"
	"errors"
	"testing"

	"stitchcms/pkg/bus"
)

// stubSender fails delivery for one recipient and accepts the rest.
type stubSender struct {
	failFor string
	sent    []string
}

func (s *stubSender) Send(_ context.Context, to, _, _ string) error {
	if to == s.failFor {
		return errors.New("smtp: mailbox unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func TestDeliverRecordsEachAttempt(t *testing.T) {
	sender := &stubSender{failFor: "bounce@x.com"}
	w := &Worker{sender: sender, composer: testComposer(t)}
	event := testEvent()
	job := bus.MailJob{ID: "job-1", Kind: bus.MailKindInvitation, EventID: event.ID}

	ok := rsvpModel{ID: 21, Email: "ok@x.com", Name: "Ada", Status: "pending"}
	record, delivered, err := w.deliver(context.Background(), job, event, ok)
	if err != nil {
		t.Fatalf("deliver() error = %v", err)
	}
	if !delivered {
		t.Fatal("deliver() delivered = false, want true")
	}
	if record.DeliveryStatus != "sent" {
		t.Fatalf("record.DeliveryStatus = %q, want %q", record.DeliveryStatus, "sent")
	}
	if record.RecipientEmail != "ok@x.com" || record.Type != bus.MailKindInvitation {
		t.Fatalf("record = %+v", record)
	}
	if record.Subject == "" || record.Message == "" {
		t.Fatal("record missing subject or message")
	}
	if record.SentAt == nil {
		t.Fatal("record.SentAt = nil")
	}

	bounced := rsvpModel{ID: 22, Email: "bounce@x.com", Name: "Bob", Status: "pending"}
	record, delivered, err = w.deliver(context.Background(), job, event, bounced)
	if err != nil {
		t.Fatalf("deliver() error = %v, want nil for a failed send", err)
	}
	if delivered {
		t.Fatal("deliver() delivered = true, want false")
	}
	if record.DeliveryStatus != "failed" {
		t.Fatalf("record.DeliveryStatus = %q, want %q", record.DeliveryStatus, "failed")
	}
	if record.SentAt == nil {
		t.Fatal("failed attempt should still carry SentAt")
	}

	if len(sender.sent) != 1 || sender.sent[0] != "ok@x.com" {
		t.Fatalf("sender.sent = %v", sender.sent)
	}
}

func TestDeliverUncomposableJob(t *testing.T) {
	w := &Worker{sender: &stubSender{}, composer: testComposer(t)}

	_, delivered, err := w.deliver(context.Background(), bus.MailJob{Kind: "newsletter"}, testEvent(), rsvpModel{ID: 1})
	if err == nil {
		t.Fatal("deliver() error = nil, want error for unknown kind")
	}
	if delivered {
		t.Fatal("deliver() delivered = true for unknown kind")
	}
}
