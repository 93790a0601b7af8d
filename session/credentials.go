package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUserNotFound signals that no credential exists for the email.
	ErrUserNotFound = errors.New("session: user not found")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("session: email already registered")
)

// CredentialStore holds login credentials. The service runs without one,
// in which case any login is accepted the way the demo backend behaves;
// with one attached, logins are verified and fail on mismatch.
type CredentialStore interface {
	Create(ctx context.Context, identity Identity, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (Identity, string, error)
}

// PGCredentialStore implements CredentialStore backed by PostgreSQL.
type PGCredentialStore struct {
	pool *pgxpool.Pool
}

// NewPGCredentialStore wires a pgxpool-backed credential store.
func NewPGCredentialStore(pool *pgxpool.Pool) *PGCredentialStore {
	return &PGCredentialStore{pool: pool}
}

// Create inserts a credential row for the identity.
func (s *PGCredentialStore) Create(ctx context.Context, identity Identity, passwordHash string) error {
	const insertSQL = `
		INSERT INTO users (id, username, email, region, primary_games, discord_id, steam_id, game_id, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, insertSQL,
		identity.ID,
		identity.Username,
		identity.Email,
		identity.Region,
		identity.PrimaryGames,
		nullable(identity.DiscordID),
		nullable(identity.SteamID),
		nullable(identity.GameID),
		nullable(string(identity.Role)),
		passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("session: create credential: %w", err)
	}
	return nil
}

// GetByEmail retrieves the identity and password hash bound to the email.
func (s *PGCredentialStore) GetByEmail(ctx context.Context, email string) (Identity, string, error) {
	const selectSQL = `
		SELECT id, username, email, region, primary_games, discord_id, steam_id, game_id, role, password_hash
		FROM users
		WHERE email = $1
	`

	var (
		identity     Identity
		discordID    *string
		steamID      *string
		gameID       *string
		role         *string
		passwordHash string
	)
	err := s.pool.QueryRow(ctx, selectSQL, email).Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.Region,
		&identity.PrimaryGames,
		&discordID,
		&steamID,
		&gameID,
		&role,
		&passwordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, "", ErrUserNotFound
		}
		return Identity{}, "", fmt.Errorf("session: get credential: %w", err)
	}

	if discordID != nil {
		identity.DiscordID = *discordID
	}
	if steamID != nil {
		identity.SteamID = *steamID
	}
	if gameID != nil {
		identity.GameID = *gameID
	}
	if role != nil {
		identity.Role = Role(*role)
	}
	return identity, passwordHash, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
