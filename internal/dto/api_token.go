package dto

import (
	"time"

	"github.com/oluto/oluto-backend/internal/core/domain"
)

// CreateAPITokenRequest defines data for creating a new API token.
type CreateAPITokenRequest struct {
	Name          string `json:"name" binding:"required"`
	ExpiresInDays *int   `json:"expiresInDays" binding:"omitempty,min=1"`
}

// APITokenResponse defines data returned for an API token.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateAPITokenResponse carries the plaintext token. It is returned exactly
// once, at creation time.
type CreateAPITokenResponse struct {
	Token    string           `json:"token"`
	APIToken APITokenResponse `json:"apiToken"`
}

// ListAPITokensResponse wraps a list of API tokens.
type ListAPITokensResponse struct {
	APITokens []APITokenResponse `json:"apiTokens"`
}

// ToAPITokenResponse converts domain.APIToken to DTO.
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListAPITokensResponse converts a slice of domain.APIToken to DTO.
func ToListAPITokensResponse(tokens []domain.APIToken) ListAPITokensResponse {
	list := make([]APITokenResponse, len(tokens))
	for i, t := range tokens {
		list[i] = ToAPITokenResponse(&t)
	}
	return ListAPITokensResponse{APITokens: list}
}
