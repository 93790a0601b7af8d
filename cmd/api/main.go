package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"talentflow/config"
	"talentflow/db"
	"talentflow/directory"
	"talentflow/notify"
	"talentflow/preference"
	"talentflow/report"
	"talentflow/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bootstrap config: %v", err)
	}

	// In-memory stores by default; Redis and Postgres replace them when
	// configured.
	var (
		sessionRepo session.Repository    = session.NewMemoryRepository()
		reportRepo  report.Repository     = report.NewMemoryRepository()
		prefRepo    preference.Repository = preference.NewMemoryRepository()
		dirRepo     directory.Repository  = directory.NewMemoryRepository(nil)
	)

	if cfg.Redis.Addr != "" {
		rdb, err := db.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("bootstrap redis: %v", err)
		}
		defer rdb.Close()

		sessionRepo = session.NewRedisRepository(rdb, cfg.SessionNamespace)
		reportRepo = report.NewRedisRepository(rdb)
		prefRepo = preference.NewRedisRepository(rdb)
	}

	sink := notify.NewLogSink()
	sessions := session.NewService(sessionRepo, cfg.JWTSecret).WithSink(sink)

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("bootstrap database pool: %v", err)
		}
		defer pool.Close()

		sessions = sessions.WithCredentialStore(session.NewPGCredentialStore(pool))

		pgDir := directory.NewPGRepository(pool)
		if err := pgDir.Seed(ctx, directory.SeedCatalog()); err != nil {
			log.Fatalf("seed directory: %v", err)
		}
		dirRepo = pgDir
	}

	search := directory.NewService(dirRepo).
		WithOutage(directory.NewRandomOutage(cfg.SearchFailureRate, time.Now().UnixNano()))
	pipeline := report.NewPipeline(reportRepo).
		WithNotifications(sink, sessionContacts{sessions: sessions})
	preferences := preference.NewService(prefRepo)

	log.Printf("talentflow services ready: sessions=%t search=%t reports=%t preferences=%t",
		sessions != nil, search != nil, pipeline != nil, preferences != nil)
}

// sessionContacts resolves report notification addresses from the active
// session. Only the session's own user has a deliverable address in this
// single-identity deployment.
type sessionContacts struct {
	sessions *session.Service
}

func (c sessionContacts) ContactAddress(ctx context.Context, userID string) (string, error) {
	identity, found, err := c.sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	if !found || identity.ID != userID {
		return "", fmt.Errorf("no contact address for user %s", userID)
	}
	return identity.Email, nil
}
