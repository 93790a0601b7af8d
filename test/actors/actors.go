package actors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"talentflow/directory"
	"talentflow/preference"
	"talentflow/report"
)

// Player drives one user's report and preference flows until stop closes.
// It is the only writer for its user id, so everything it reads back must
// match what it last wrote.
func Player(ctx context.Context, pipeline *report.Pipeline, prefs *preference.Service, userID string, stop <-chan struct{}) error {
	sharing := true // the documented default
	generated := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		switch rand.Intn(4) {
		case 0:
			sharing = !sharing
			if err := prefs.SetSharing(ctx, userID, sharing); err != nil {
				return fmt.Errorf("player %s set sharing: %w", userID, err)
			}
		case 1:
			got, err := prefs.Sharing(ctx, userID)
			if err != nil {
				return fmt.Errorf("player %s read sharing: %w", userID, err)
			}
			if got != sharing {
				return fmt.Errorf("player %s observed sharing=%t, last wrote %t", userID, got, sharing)
			}
		case 2:
			if _, err := pipeline.Generate(ctx, userID); err != nil {
				return fmt.Errorf("player %s generate: %w", userID, err)
			}
			generated = true
		case 3:
			status, err := pipeline.Status(ctx, userID)
			if err != nil {
				return fmt.Errorf("player %s status: %w", userID, err)
			}
			if generated && status.State != report.StateReady {
				return fmt.Errorf("player %s expected ready, got %s", userID, status.State)
			}
			if !generated && status.State != report.StatePending {
				return fmt.Errorf("player %s expected pending, got %s", userID, status.State)
			}
			if generated {
				rpt, err := pipeline.Fetch(ctx, userID)
				if err != nil {
					return fmt.Errorf("player %s fetch: %w", userID, err)
				}
				if rpt.UserID != userID {
					return fmt.Errorf("player %s fetched foreign report for %s", userID, rpt.UserID)
				}
			}
		}

		time.Sleep(time.Duration(1+rand.Intn(5)) * time.Millisecond)
	}
}

// Scout runs randomized searches until stop closes and verifies the filter
// invariants hold on every result. Transient outages are retryable by
// contract and simply skipped.
func Scout(ctx context.Context, search *directory.Service, stop <-chan struct{}) error {
	regions := []string{"", "Europe", "Asia", "North America"}
	queries := []string{"", "clutch", "support", "awp", "vision"}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		region := regions[rand.Intn(len(regions))]
		query := queries[rand.Intn(len(queries))]

		players, err := search.Search(ctx, query, directory.Filters{Region: region})
		if err != nil {
			if errors.Is(err, directory.ErrUnavailable) {
				continue
			}
			return fmt.Errorf("scout search: %w", err)
		}

		for _, p := range players {
			if region != "" && !strings.Contains(strings.ToLower(p.Region), strings.ToLower(region)) {
				return fmt.Errorf("scout got %s outside region filter %q", p.Name, region)
			}
		}

		time.Sleep(time.Duration(1+rand.Intn(5)) * time.Millisecond)
	}
}
