package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestPipeline_StatusPendingBeforeGenerate(t *testing.T) {
	p := NewPipeline(NewMemoryRepository())

	status, err := p.Status(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.State != StatePending {
		t.Fatalf("expected pending, got %s", status.State)
	}
	if status.ETA != "7 days" {
		t.Fatalf("expected advisory eta %q, got %q", "7 days", status.ETA)
	}
}

func TestPipeline_GenerateTransitionsToReady(t *testing.T) {
	p := NewPipeline(NewMemoryRepository())
	ctx := context.Background()

	if _, err := p.Fetch(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before generate, got %v", err)
	}

	generated, err := p.Generate(ctx, "user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if generated.Status != StateReady || generated.UserID != "user-1" {
		t.Fatalf("unexpected generated report: %+v", generated)
	}

	status, err := p.Status(ctx, "user-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.State != StateReady {
		t.Fatalf("expected ready after generate, got %s", status.State)
	}
	if status.ETA != "" {
		t.Fatalf("expected no eta when ready, got %q", status.ETA)
	}

	fetched, err := p.Fetch(ctx, "user-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetched.ID != generated.ID || fetched.OverallRating != 8.5 || fetched.ConsistencyScore != 87 {
		t.Fatalf("unexpected fetched report: %+v", fetched)
	}

	// Reports for other users stay pending.
	other, err := p.Status(ctx, "user-2")
	if err != nil {
		t.Fatalf("status other: %v", err)
	}
	if other.State != StatePending {
		t.Fatalf("expected pending for other user, got %s", other.State)
	}
}

func TestPipeline_RegenerateOverwrites(t *testing.T) {
	p := NewPipeline(NewMemoryRepository())
	seq := 0
	p.idGen = func() string {
		seq++
		return fmt.Sprintf("report-%d", seq)
	}
	base := time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return base }

	ctx := context.Background()
	if _, err := p.Generate(ctx, "user-1"); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	base = base.Add(time.Hour)
	if _, err := p.Generate(ctx, "user-1"); err != nil {
		t.Fatalf("second generate: %v", err)
	}

	rpt, err := p.Fetch(ctx, "user-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rpt.ID != "report-2" {
		t.Fatalf("expected regenerated report to win, got %q", rpt.ID)
	}
	if !rpt.CreatedAt.Equal(base) {
		t.Fatalf("expected refreshed createdAt, got %s", rpt.CreatedAt)
	}
}

func TestPipeline_AuthorizeProviders(t *testing.T) {
	p := NewPipeline(NewMemoryRepository())
	ctx := context.Background()

	if err := p.AuthorizeProviders(ctx, []string{"steam", "faceit"}, false); !errors.Is(err, ErrConsentRequired) {
		t.Fatalf("expected ErrConsentRequired, got %v", err)
	}
	if err := p.AuthorizeProviders(ctx, []string{"steam", "faceit"}, true); err != nil {
		t.Fatalf("authorize: %v", err)
	}

	// Authorization alone must not create a report.
	status, err := p.Status(ctx, "user-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.State != StatePending {
		t.Fatalf("expected still pending after authorize, got %s", status.State)
	}
}

func TestPipeline_NotifiesOnGenerate(t *testing.T) {
	sink := &recordingSink{}
	p := NewPipeline(NewMemoryRepository()).
		WithNotifications(sink, staticContacts{"user-1": "player@example.com"})

	if _, err := p.Generate(context.Background(), "user-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(sink.sent) != 1 || sink.sent[0].to != "player@example.com" {
		t.Fatalf("expected one ready notification, got %+v", sink.sent)
	}
}

func TestPipeline_NotificationFailureDoesNotFailGenerate(t *testing.T) {
	sink := &recordingSink{err: errors.New("smtp down")}
	p := NewPipeline(NewMemoryRepository()).
		WithNotifications(sink, staticContacts{"user-1": "player@example.com"})

	ctx := context.Background()
	if _, err := p.Generate(ctx, "user-1"); err != nil {
		t.Fatalf("generate must not propagate sink failure: %v", err)
	}

	// Unresolvable contacts are equally non-fatal.
	if _, err := p.Generate(ctx, "user-without-contact"); err != nil {
		t.Fatalf("generate must not propagate resolver failure: %v", err)
	}

	if _, err := p.Fetch(ctx, "user-1"); err != nil {
		t.Fatalf("report must be stored despite delivery failure: %v", err)
	}
}

type staticContacts map[string]string

func (c staticContacts) ContactAddress(_ context.Context, userID string) (string, error) {
	addr, ok := c[userID]
	if !ok {
		return "", fmt.Errorf("no contact for %s", userID)
	}
	return addr, nil
}

type sentMessage struct {
	to      string
	subject string
	body    string
}

type recordingSink struct {
	sent []sentMessage
	err  error
}

func (s *recordingSink) Send(_ context.Context, to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{to: to, subject: subject, body: body})
	return nil
}
