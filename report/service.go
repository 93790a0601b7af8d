package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"talentflow/notify"
)

// ErrConsentRequired signals a provider authorization without consent.
var ErrConsentRequired = errors.New("report: data access consent is required")

// pendingETA is the advisory estimate advertised while no report exists.
const pendingETA = "7 days"

// ContactResolver maps a user id to a deliverable contact address for the
// ready notification.
type ContactResolver interface {
	ContactAddress(ctx context.Context, userID string) (string, error)
}

// Pipeline moves each user's report from pending to ready. Absence of a
// stored report means pending; generation is the only transition.
type Pipeline struct {
	repo     Repository
	sink     notify.Sink
	contacts ContactResolver
	idGen    func() string
	now      func() time.Time
}

// NewPipeline builds a report pipeline over the given repository.
func NewPipeline(repo Repository) *Pipeline {
	return &Pipeline{
		repo:  repo,
		idGen: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

// WithNotifications attaches a sink and contact resolver; a generated
// report then triggers a ready notification.
func (p *Pipeline) WithNotifications(sink notify.Sink, contacts ContactResolver) *Pipeline {
	p.sink = sink
	p.contacts = contacts
	return p
}

// AuthorizeProviders records the player's consent to pull data from the
// given providers. It is the logical start of the pending period and does
// not itself create a report; the real provider OAuth exchange sits behind
// this contract.
func (p *Pipeline) AuthorizeProviders(_ context.Context, providerIDs []string, consent bool) error {
	if !consent {
		return ErrConsentRequired
	}
	log.Printf("report: providers authorized: %v", providerIDs)
	return nil
}

// Status reports the pipeline state for the user. No stored report means
// pending with an advisory ETA.
func (p *Pipeline) Status(ctx context.Context, userID string) (Status, error) {
	rpt, err := p.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Status{State: StatePending, ETA: pendingETA}, nil
		}
		return Status{}, err
	}
	return Status{State: rpt.Status}, nil
}

// Generate produces a brand-new report for the user, overwriting any prior
// one, and transitions the status to ready. It stands in for a backend job
// completion callback: the scoring below is fixed until provider data flows
// through the pipeline. Regeneration of an already-ready report is allowed.
func (p *Pipeline) Generate(ctx context.Context, userID string) (Report, error) {
	rpt := Report{
		ID:               p.idGen(),
		UserID:           userID,
		OverallRating:    8.5,
		RoleFit:          "Entry Fragger",
		Strengths:        []string{"Aggressive positioning", "High first-kill rate", "Consistent aim"},
		AreasToImprove:   []string{"Utility usage", "Communication timing"},
		ConsistencyScore: 87,
		RecentForm:       "Improving",
		Status:           StateReady,
		CreatedAt:        p.now(),
	}

	if err := p.repo.Save(ctx, rpt); err != nil {
		return Report{}, fmt.Errorf("report: store report: %w", err)
	}

	p.notifyReady(ctx, userID)
	return rpt, nil
}

// Fetch returns the stored report, or ErrNotFound while still pending.
func (p *Pipeline) Fetch(ctx context.Context, userID string) (Report, error) {
	return p.repo.Get(ctx, userID)
}

// notifyReady delivers the ready notification best effort. A resolver or
// sink failure is logged, never surfaced to the Generate caller.
func (p *Pipeline) notifyReady(ctx context.Context, userID string) {
	if p.sink == nil || p.contacts == nil {
		return
	}

	addr, err := p.contacts.ContactAddress(ctx, userID)
	if err != nil {
		log.Printf("report: resolve contact for %s: %v", userID, err)
		return
	}

	body := "Your performance report is ready. Log in to view your ratings and areas to improve."
	if err := p.sink.Send(ctx, addr, "Your report is ready", body); err != nil {
		log.Printf("report: ready notification for %s: %v", userID, err)
	}
}
