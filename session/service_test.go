package session

import (
	"context"
	"errors"
	"testing"
)

func validInput() RegisterInput {
	return RegisterInput{
		Username:        "ShadowFan",
		Email:           "shadow@example.com",
		Password:        "supersafe",
		ConfirmPassword: "supersafe",
		Region:          "Europe",
		PrimaryGames:    []string{"CS:GO", "VALORANT"},
		DiscordID:       "shadow#1234",
		AgreeToTerms:    true,
	}
}

func TestService_RegisterAndCurrent(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, "test-secret")

	ctx := context.Background()
	input := validInput()

	identity, err := svc.Register(ctx, input)
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}
	if identity.ID == "" {
		t.Fatal("register: expected generated id")
	}
	if identity.Username != input.Username || identity.Email != input.Email || identity.Region != input.Region {
		t.Fatalf("register: identity fields not copied: %+v", identity)
	}
	if len(identity.PrimaryGames) != 2 {
		t.Fatalf("register: expected primary games copied, got %v", identity.PrimaryGames)
	}

	current, found, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !found || current.ID != identity.ID {
		t.Fatalf("current: expected active identity %q, got %+v found=%t", identity.ID, current, found)
	}
}

func TestService_SessionSurvivesRestart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	identity, err := NewService(repo, "test-secret").Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// A fresh service over the same durable store stands in for a restart.
	restarted := NewService(repo, "test-secret")
	current, found, err := restarted.Current(ctx)
	if err != nil {
		t.Fatalf("current after restart: %v", err)
	}
	if !found || current.ID != identity.ID || current.Email != identity.Email {
		t.Fatalf("expected hydrated identity %q, got %+v found=%t", identity.ID, current, found)
	}
}

func TestService_RegisterPasswordMismatch(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, "test-secret")

	input := validInput()
	input.ConfirmPassword = "different"

	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if _, found, err := svc.Current(context.Background()); err != nil || found {
		t.Fatalf("expected no session after failed register, found=%t err=%v", found, err)
	}
	if _, found, _ := repo.Load(context.Background()); found {
		t.Fatal("expected durable store untouched after failed register")
	}
}

func TestService_RegisterConsentRequired(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret")

	input := validInput()
	input.AgreeToTerms = false

	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}
}

func TestService_RegisterInvalidInput(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret")

	input := validInput()
	input.Email = "not-an-email"

	if _, err := svc.Register(context.Background(), input); err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}

func TestService_LoginValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret")

	if _, err := svc.Login(context.Background(), "", "password"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "someone@example.com", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestService_LoginDemoMode(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, "test-secret")

	ctx := context.Background()
	identity, err := svc.Login(ctx, "someone@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Username != "DemoUser" || identity.Region != "Global" {
		t.Fatalf("expected placeholder identity, got %+v", identity)
	}
	if identity.Email != "someone@example.com" {
		t.Fatalf("expected email bound to login, got %q", identity.Email)
	}

	if _, found, _ := repo.Load(ctx); !found {
		t.Fatal("expected login to persist the session record")
	}
}

func TestService_LoginWithCredentialStore(t *testing.T) {
	repo := NewMemoryRepository()
	creds := newFakeCredentialStore()
	svc := NewService(repo, "test-secret").WithCredentialStore(creds)

	ctx := context.Background()
	input := validInput()

	registered, err := svc.Register(ctx, input)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	identity, err := svc.Login(ctx, input.Email, input.Password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.ID != registered.ID {
		t.Fatalf("expected stored identity %q, got %q", registered.ID, identity.ID)
	}

	if _, err := svc.Login(ctx, input.Email, "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "unknown@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret").WithCredentialStore(newFakeCredentialStore())

	if _, err := svc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), validInput()); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_SetRole(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, "test-secret")

	ctx := context.Background()
	if _, err := svc.SetRole(ctx, RolePlayer); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	registered, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.SetRole(ctx, Role("admin")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	updated, err := svc.SetRole(ctx, RolePlayer)
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if updated.Role != RolePlayer || updated.ID != registered.ID {
		t.Fatalf("expected merged role on same identity, got %+v", updated)
	}

	// Role must survive on the durable record, not only in memory.
	stored, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load after set role: found=%t err=%v", found, err)
	}
	if stored.Role != RolePlayer {
		t.Fatalf("expected persisted role %q, got %q", RolePlayer, stored.Role)
	}
}

func TestService_Logout(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, "test-secret")

	ctx := context.Background()
	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, found, err := svc.Current(ctx); err != nil || found {
		t.Fatalf("expected no session after logout, found=%t err=%v", found, err)
	}
	if _, found, _ := repo.Load(ctx); found {
		t.Fatal("expected durable record cleared after logout")
	}
}

func TestService_TokenRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "test-secret")

	identity, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	identity.Role = RoleScout

	token, err := svc.IssueToken(identity)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty string")
	}

	userID, role, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if userID != identity.ID || role != RoleScout {
		t.Fatalf("expected %q/%s, got %q/%s", identity.ID, RoleScout, userID, role)
	}

	if _, _, err := NewService(NewMemoryRepository(), "other-secret").VerifyToken(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestService_ForgotPassword(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(NewMemoryRepository(), "test-secret").WithSink(sink)

	message, err := svc.ForgotPassword(context.Background(), "shadow@example.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if message == "" {
		t.Fatal("expected acknowledgement message")
	}
	if len(sink.sent) != 1 || sink.sent[0].to != "shadow@example.com" {
		t.Fatalf("expected one reset notification, got %+v", sink.sent)
	}

	if _, err := svc.ForgotPassword(context.Background(), ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

type fakeCredentialStore struct {
	byEmail map[string]storedCredential
}

type storedCredential struct {
	identity Identity
	hash     string
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{byEmail: make(map[string]storedCredential)}
}

func (f *fakeCredentialStore) Create(_ context.Context, identity Identity, passwordHash string) error {
	if _, exists := f.byEmail[identity.Email]; exists {
		return ErrDuplicateEmail
	}
	f.byEmail[identity.Email] = storedCredential{identity: identity, hash: passwordHash}
	return nil
}

func (f *fakeCredentialStore) GetByEmail(_ context.Context, email string) (Identity, string, error) {
	cred, ok := f.byEmail[email]
	if !ok {
		return Identity{}, "", ErrUserNotFound
	}
	return cred.identity, cred.hash, nil
}

type sentMessage struct {
	to      string
	subject string
	body    string
}

type recordingSink struct {
	sent []sentMessage
}

func (s *recordingSink) Send(_ context.Context, to, subject, body string) error {
	s.sent = append(s.sent, sentMessage{to: to, subject: subject, body: body})
	return nil
}
