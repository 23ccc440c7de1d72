package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oluto/oluto-backend/internal/apperrors"
	"github.com/oluto/oluto-backend/internal/core/domain"
	portsrepo "github.com/oluto/oluto-backend/internal/core/ports/repositories"
	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
	"github.com/oluto/oluto-backend/internal/utils"
)

// apiTokenPrefix marks Oluto API tokens so leaked tokens can be recognized
// by secret scanners.
const apiTokenPrefix = "olt_"

// apiTokenService implements API token management. Tokens are stored as
// SHA-256 hashes so validation is a single indexed lookup.
type apiTokenService struct {
	BaseService
	tokenRepo portsrepo.APITokenRepository
	userSvc   portssvc.UserSvcFacade
}

// NewAPITokenService creates a new API token service.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository, userSvc portssvc.UserSvcFacade) portssvc.APITokenSvc {
	return &apiTokenService{
		tokenRepo: tokenRepo,
		userSvc:   userSvc,
	}
}

var _ portssvc.APITokenSvc = (*apiTokenService)(nil)

func hashAPIToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

// CreateToken generates a new API token for the user. The plaintext token is
// returned exactly once; only its hash is persisted.
func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if name == "" {
		return "", nil, fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	if _, err := s.userSvc.GetUserByID(ctx, userID); err != nil {
		return "", nil, err
	}

	randomPart, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate API token randomness")
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext := apiTokenPrefix + randomPart

	var expiresAt *time.Time
	if expiresIn != nil {
		if *expiresIn <= 0 {
			return "", nil, fmt.Errorf("%w: token expiry must be in the future", apperrors.ErrValidation)
		}
		t := time.Now().Add(*expiresIn)
		expiresAt = &t
	}

	token := &domain.APIToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		TokenHash: hashAPIToken(plaintext),
		ExpiresAt: expiresAt,
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to persist API token", slog.String("user_id", userID))
		return "", nil, fmt.Errorf("failed to save API token: %w", err)
	}

	s.LogInfo(ctx, "API token created", slog.String("user_id", userID), slog.String("token_id", token.ID))
	return plaintext, token, nil
}

// ListTokens returns all active API tokens for a user.
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list API tokens", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list API tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken deletes a specific API token. Users can only revoke their own
// tokens; a token belonging to another user reads as not found.
func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.UserID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		s.LogError(ctx, err, "Failed to revoke API token", slog.String("token_id", tokenID))
		return fmt.Errorf("failed to revoke API token: %w", err)
	}

	s.LogInfo(ctx, "API token revoked", slog.String("user_id", userID), slog.String("token_id", tokenID))
	return nil
}

// ValidateToken checks a presented token and returns the owning user. The
// last_used_at timestamp is updated best-effort.
func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if !strings.HasPrefix(tokenString, apiTokenPrefix) {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.tokenRepo.FindByTokenHash(ctx, hashAPIToken(tokenString))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up API token")
		return nil, fmt.Errorf("failed to validate API token: %w", err)
	}

	if token.IsExpired() {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userSvc.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user for API token: %w", err)
	}

	token.UpdateLastUsed()
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		// A failed usage-timestamp update must not block authentication.
		s.LogDebug(ctx, "Failed to update API token last_used_at", slog.String("token_id", token.ID))
	}

	return user, nil
}
