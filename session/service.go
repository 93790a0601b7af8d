package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talentflow/notify"
)

var (
	// ErrPasswordMismatch signals password and confirmation differ.
	ErrPasswordMismatch = errors.New("session: passwords do not match")
	// ErrTermsNotAccepted signals registration without the required consent.
	ErrTermsNotAccepted = errors.New("session: terms and privacy policy must be accepted")
	// ErrMissingCredentials signals a login with an empty email or password.
	ErrMissingCredentials = errors.New("session: email and password are required")
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	// ErrNoActiveSession signals an operation that requires a logged-in identity.
	ErrNoActiveSession = errors.New("session: no active session")
	// ErrInvalidRole signals a role outside scout/player.
	ErrInvalidRole = errors.New("session: invalid role")
)

// Service owns the session lifecycle for one client context: at most one
// active identity, cached in memory and mirrored to the durable repository.
type Service struct {
	repo      Repository
	creds     CredentialStore
	sink      notify.Sink
	validate  *validator.Validate
	jwtSecret []byte
	idGen     func() string
	now       func() time.Time

	mu      sync.RWMutex
	current *Identity
}

// NewService creates a session service over the given repository. Without a
// credential store attached, logins accept any non-empty credentials.
func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		validate:  validator.New(),
		jwtSecret: []byte(jwtSecret),
		idGen:     func() string { return uuid.NewString() },
		now:       time.Now,
	}
}

// WithCredentialStore attaches a credential store; logins are then verified.
func (s *Service) WithCredentialStore(creds CredentialStore) *Service {
	s.creds = creds
	return s
}

// WithSink attaches a notification sink used for password reset messages.
func (s *Service) WithSink(sink notify.Sink) *Service {
	s.sink = sink
	return s
}

// Register validates the input, synthesizes a fresh identity, and commits it
// as the active session. The session is untouched when any check fails.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Identity, error) {
	if err := s.validate.Struct(input); err != nil {
		return Identity{}, fmt.Errorf("session: invalid registration input: %w", err)
	}
	if input.Password != input.ConfirmPassword {
		return Identity{}, ErrPasswordMismatch
	}
	if !input.AgreeToTerms {
		return Identity{}, ErrTermsNotAccepted
	}

	identity := Identity{
		ID:           s.idGen(),
		Username:     input.Username,
		Email:        input.Email,
		Region:       input.Region,
		PrimaryGames: input.PrimaryGames,
		DiscordID:    input.DiscordID,
		SteamID:      input.SteamID,
		GameID:       input.GameID,
	}

	if s.creds != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return Identity{}, fmt.Errorf("session: hash password: %w", err)
		}
		if err := s.creds.Create(ctx, identity, string(hash)); err != nil {
			return Identity{}, err
		}
	}

	if err := s.commit(ctx, identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Login binds an identity to the given email and commits it as the active
// session. With a credential store attached the password is verified and a
// mismatch fails without touching the session.
func (s *Service) Login(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrMissingCredentials
	}

	var identity Identity
	if s.creds != nil {
		stored, hash, err := s.creds.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return Identity{}, ErrInvalidCredentials
			}
			return Identity{}, err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return Identity{}, ErrInvalidCredentials
		}
		identity = stored
	} else {
		// Demo mode: any credentials bind a placeholder identity.
		identity = Identity{
			ID:           s.idGen(),
			Username:     "DemoUser",
			Email:        email,
			Region:       "Global",
			PrimaryGames: []string{"CS:GO"},
		}
	}

	if err := s.commit(ctx, identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Current returns the active identity, hydrating from the durable store when
// the in-memory cache is cold. A missing record reports false, not an error.
func (s *Service) Current(ctx context.Context) (Identity, bool, error) {
	s.mu.RLock()
	if s.current != nil {
		identity := *s.current
		s.mu.RUnlock()
		return identity, true, nil
	}
	s.mu.RUnlock()

	identity, found, err := s.repo.Load(ctx)
	if err != nil || !found {
		return Identity{}, false, err
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	return identity, true, nil
}

// SetRole merges the role into the active identity and re-persists the full
// record.
func (s *Service) SetRole(ctx context.Context, role Role) (Identity, error) {
	if role != RoleScout && role != RolePlayer {
		return Identity{}, ErrInvalidRole
	}

	identity, found, err := s.Current(ctx)
	if err != nil {
		return Identity{}, err
	}
	if !found {
		return Identity{}, ErrNoActiveSession
	}

	identity.Role = role
	if err := s.commit(ctx, identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Logout clears the durable record first, then the in-memory cache, so a
// failed clear leaves the session observable and retryable.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// ForgotPassword acknowledges a reset request. Delivery of the reset message
// is best effort; a sink failure is logged, not returned.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrMissingCredentials
	}
	message := fmt.Sprintf("Password reset instructions sent to %s", email)
	if s.sink != nil {
		if err := s.sink.Send(ctx, email, "Password reset", message); err != nil {
			log.Printf("session: reset notification failed: %v", err)
		}
	}
	return message, nil
}

// IssueToken creates a signed session token for the identity.
func (s *Service) IssueToken(identity Identity) (string, error) {
	claims := jwt.MapClaims{
		"user_id": identity.ID,
		"role":    string(identity.Role),
		"exp":     s.now().Add(24 * time.Hour).Unix(),
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the bound user id and role.
func (s *Service) VerifyToken(tokenString string) (string, Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("session: parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("session: invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("session: invalid user_id in token")
	}
	roleStr, _ := claims["role"].(string)
	return userID, Role(roleStr), nil
}

// commit persists the identity and only then updates the in-memory cache,
// keeping a failed save invisible to callers.
func (s *Service) commit(ctx context.Context, identity Identity) error {
	if err := s.repo.Save(ctx, identity); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	return nil
}
