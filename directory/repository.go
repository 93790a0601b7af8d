package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrPlayerNotFound signals the requested directory entry does not exist.
	ErrPlayerNotFound = errors.New("directory: player not found")
)

// Repository provides read access to the candidate catalog.
type Repository interface {
	All(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, error)
}

// MemoryRepository serves a fixed catalog from memory. It backs tests and
// deployments that have not attached a database yet.
type MemoryRepository struct {
	mu      sync.RWMutex
	players []Player
}

// NewMemoryRepository creates a repository over the given catalog. A nil
// catalog falls back to the default seed.
func NewMemoryRepository(players []Player) *MemoryRepository {
	if players == nil {
		players = SeedCatalog()
	}
	return &MemoryRepository{players: players}
}

// All returns the catalog in insertion order.
func (r *MemoryRepository) All(_ context.Context) ([]Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out, nil
}

// GetByID returns a single catalog entry.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.ID == id {
			return p, nil
		}
	}
	return Player{}, ErrPlayerNotFound
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository wires a pgxpool-backed repository implementation.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const playerColumns = `id, name, role, strengths, last_thirty_day_form, summary, game, region, experience, availability, clutch_percentage, entry_style, utility_usage`

// All returns the catalog ordered by insertion position.
func (r *PGRepository) All(ctx context.Context) ([]Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY position`, playerColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("directory: list players: %w", err)
	}
	defer rows.Close()

	players := make([]Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("directory: scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory: iterate players: %w", err)
	}
	return players, nil
}

// GetByID fetches one catalog entry by its primary key.
func (r *PGRepository) GetByID(ctx context.Context, id string) (Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrPlayerNotFound
		}
		return Player{}, fmt.Errorf("directory: get player: %w", err)
	}
	return p, nil
}

// Seed inserts catalog entries, skipping ids that already exist. Used by
// bootstrap and the test harness.
func (r *PGRepository) Seed(ctx context.Context, players []Player) error {
	const insertSQL = `
		INSERT INTO players (id, name, role, strengths, last_thirty_day_form, summary, game, region, experience, availability, clutch_percentage, entry_style, utility_usage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	for _, p := range players {
		_, err := r.pool.Exec(ctx, insertSQL,
			p.ID,
			p.Name,
			p.Role,
			p.Strengths,
			p.LastThirtyDayForm,
			p.Summary,
			p.Game,
			p.Region,
			string(p.Experience),
			p.Availability,
			p.ClutchPercentage,
			nullable(p.EntryStyle),
			nullable(p.UtilityUsage),
		)
		if err != nil {
			return fmt.Errorf("directory: seed player %s: %w", p.ID, err)
		}
	}
	return nil
}

func scanPlayer(row pgx.Row) (Player, error) {
	var (
		p            Player
		experience   string
		clutch       *int
		entryStyle   *string
		utilityUsage *string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Role,
		&p.Strengths,
		&p.LastThirtyDayForm,
		&p.Summary,
		&p.Game,
		&p.Region,
		&experience,
		&p.Availability,
		&clutch,
		&entryStyle,
		&utilityUsage,
	)
	if err != nil {
		return Player{}, err
	}

	p.Experience = Experience(experience)
	p.ClutchPercentage = clutch
	if entryStyle != nil {
		p.EntryStyle = *entryStyle
	}
	if utilityUsage != nil {
		p.UtilityUsage = *utilityUsage
	}
	return p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
