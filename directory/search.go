package directory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// ErrUnavailable signals a transient search backend outage. Callers may
// retry; it never indicates anything about the query itself.
var ErrUnavailable = errors.New("directory: search temporarily unavailable")

// Outage decides whether the next search call should fail transiently.
type Outage interface {
	Down() bool
}

// NoOutage never fails a call.
type NoOutage struct{}

// Down always reports healthy.
func (NoOutage) Down() bool { return false }

// RandomOutage fails a fixed fraction of calls. The generator is seeded so
// tests can pin the behavior with rate 0 or 1.
type RandomOutage struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

// NewRandomOutage creates an outage strategy with the given failure rate.
func NewRandomOutage(rate float64, seed int64) *RandomOutage {
	return &RandomOutage{
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Down reports a failure with the configured probability.
func (o *RandomOutage) Down() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.Float64() < o.rate
}

// Journal records scout actions against directory entries.
type Journal interface {
	AddShortlist(ctx context.Context, scoutID, playerID string) error
	AddContactRequest(ctx context.Context, scoutID, playerID, message string) error
	Shortlist(ctx context.Context, scoutID string) ([]string, error)
}

// ContactRequest is one scout-to-player outreach entry.
type ContactRequest struct {
	PlayerID string
	Message  string
}

// MemoryJournal keeps scout activity in memory, keyed by scout id.
type MemoryJournal struct {
	mu        sync.RWMutex
	shortlist map[string][]string
	contacts  map[string][]ContactRequest
}

// NewMemoryJournal creates an empty journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		shortlist: make(map[string][]string),
		contacts:  make(map[string][]ContactRequest),
	}
}

// AddShortlist appends a player to the scout's shortlist, ignoring duplicates.
func (j *MemoryJournal) AddShortlist(_ context.Context, scoutID, playerID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, id := range j.shortlist[scoutID] {
		if id == playerID {
			return nil
		}
	}
	j.shortlist[scoutID] = append(j.shortlist[scoutID], playerID)
	return nil
}

// AddContactRequest records an outreach message.
func (j *MemoryJournal) AddContactRequest(_ context.Context, scoutID, playerID, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.contacts[scoutID] = append(j.contacts[scoutID], ContactRequest{PlayerID: playerID, Message: message})
	return nil
}

// Shortlist returns the scout's saved player ids in save order.
func (j *MemoryJournal) Shortlist(_ context.Context, scoutID string) ([]string, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]string, len(j.shortlist[scoutID]))
	copy(out, j.shortlist[scoutID])
	return out, nil
}

// Service runs searches over the candidate catalog.
type Service struct {
	repo    Repository
	journal Journal
	outage  Outage
}

// NewService builds a search service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		journal: NewMemoryJournal(),
		outage:  NoOutage{},
	}
}

// WithOutage installs a transient-failure strategy.
func (s *Service) WithOutage(o Outage) *Service {
	s.outage = o
	return s
}

// WithJournal installs a scout activity journal.
func (s *Service) WithJournal(j Journal) *Service {
	s.journal = j
	return s
}

// Search filters the catalog against the query and filter set.
//
// Filters apply first, each as a conjunctive predicate: game and region by
// case-insensitive substring, experience and availability by exact match.
// A non-empty query then keeps records where the lower-cased query appears
// in the name, role, summary, or any strength. Result order is catalog
// order. A call either returns the full matching set or an error, never a
// partial result.
func (s *Service) Search(ctx context.Context, query string, filters Filters) ([]Player, error) {
	if s.outage.Down() {
		return nil, ErrUnavailable
	}

	players, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("directory: load catalog: %w", err)
	}

	results := make([]Player, 0, len(players))
	for _, p := range players {
		if !matchesFilters(p, filters) {
			continue
		}
		if query != "" && !matchesQuery(p, strings.ToLower(query)) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

// SavePlayer records a player on the scout's shortlist.
func (s *Service) SavePlayer(ctx context.Context, scoutID, playerID string) error {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return err
	}
	return s.journal.AddShortlist(ctx, scoutID, playerID)
}

// RequestContact records a scout's outreach message for a player.
func (s *Service) RequestContact(ctx context.Context, scoutID, playerID, message string) error {
	if _, err := s.repo.GetByID(ctx, playerID); err != nil {
		return err
	}
	return s.journal.AddContactRequest(ctx, scoutID, playerID, message)
}

func matchesFilters(p Player, f Filters) bool {
	if f.Game != "" && !containsFold(p.Game, f.Game) {
		return false
	}
	if f.Region != "" && !containsFold(p.Region, f.Region) {
		return false
	}
	if f.Experience != "" && p.Experience != f.Experience {
		return false
	}
	if f.Availability != nil && p.Availability != *f.Availability {
		return false
	}
	return true
}

func matchesQuery(p Player, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Role), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Summary), lowerQuery) {
		return true
	}
	for _, strength := range p.Strengths {
		if strings.Contains(strings.ToLower(strength), lowerQuery) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
