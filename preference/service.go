package preference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest signals a connection request missing required fields.
var ErrInvalidRequest = errors.New("preference: invalid connection request")

// Service owns per-user sharing preferences and connection requests.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService builds a preference service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// Sharing returns the user's sharing flag. Never-set defaults to true:
// players are visible to scouts unless they opt out.
func (s *Service) Sharing(ctx context.Context, userID string) (bool, error) {
	value, found, err := s.repo.SharingFlag(ctx, userID)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	return value, nil
}

// SetSharing persists the user's sharing flag.
func (s *Service) SetSharing(ctx context.Context, userID string, enabled bool) error {
	return s.repo.SaveSharingFlag(ctx, userID, enabled)
}

// SubmitConnectionRequest validates and persists the request, overwriting
// any prior one for the user. Nothing is written when validation fails.
func (s *Service) SubmitConnectionRequest(ctx context.Context, userID string, req ConnectionRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if strings.TrimSpace(req.Availability) == "" {
		return fmt.Errorf("%w: availability must not be blank", ErrInvalidRequest)
	}
	return s.repo.SaveRequest(ctx, userID, req)
}

// ConnectionRequest returns the user's stored request, if any.
func (s *Service) ConnectionRequest(ctx context.Context, userID string) (ConnectionRequest, bool, error) {
	return s.repo.Request(ctx, userID)
}
