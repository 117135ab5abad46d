package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

// stubTokenRepository records refresh tokens and rejects duplicates the way
// the unique index on refresh_tokens.token would.
type stubTokenRepository struct {
	saved map[string]uuid.UUID
}

func newStubTokenRepository() *stubTokenRepository {
	return &stubTokenRepository{saved: make(map[string]uuid.UUID)}
}

func (r *stubTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	if _, ok := r.saved[token]; ok {
		return errors.New("UNIQUE constraint failed: refresh_tokens.token")
	}
	r.saved[token] = userID
	return nil
}

func (r *stubTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	_, ok := r.saved[token]
	return ok, nil
}

func (r *stubTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	delete(r.saved, token)
	return nil
}

func (r *stubTokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	for token, owner := range r.saved {
		if owner == userID {
			delete(r.saved, token)
		}
	}
	return nil
}

func (r *stubTokenRepository) SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	return nil
}

func (r *stubTokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetTokenModel, error) {
	return nil, nil
}

func (r *stubTokenRepository) InvalidatePasswordResetToken(ctx context.Context, token string) error {
	return nil
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("generates a valid token pair", func(t *testing.T) {
		service := NewTokenService("test-secret", newStubTokenRepository())

		pair, err := service.GenerateTokenPair(ctx, userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token pair: %v", err)
		}

		claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("failed to validate access token: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
		}
		if claims.Email != "user@example.com" {
			t.Errorf("expected email user@example.com, got %s", claims.Email)
		}

		if _, err := service.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("failed to validate refresh token: %v", err)
		}
	})

	t.Run("pairs minted back to back are distinct", func(t *testing.T) {
		repo := newStubTokenRepository()
		service := NewTokenService("test-secret", repo)

		// Both pairs land within the same second, so only the jti claim can
		// keep the signed tokens apart. The stub rejects a duplicate save
		// just like the unique index would.
		first, err := service.GenerateTokenPair(ctx, userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate first pair: %v", err)
		}
		second, err := service.GenerateTokenPair(ctx, userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate second pair: %v", err)
		}

		if first.RefreshToken == second.RefreshToken {
			t.Error("expected distinct refresh tokens for consecutive pairs")
		}
		if first.AccessToken == second.AccessToken {
			t.Error("expected distinct access tokens for consecutive pairs")
		}
		if len(repo.saved) != 2 {
			t.Errorf("expected 2 stored refresh tokens, got %d", len(repo.saved))
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		service := NewTokenService("test-secret", newStubTokenRepository())
		other := NewTokenService("other-secret", newStubTokenRepository())

		pair, err := other.GenerateTokenPair(ctx, userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token pair: %v", err)
		}

		if _, err := service.ValidateAccessToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected validation to fail for a foreign signature")
		}
	})

	t.Run("rejects a refresh token presented as an access token", func(t *testing.T) {
		service := NewTokenService("test-secret", newStubTokenRepository())

		pair, err := service.GenerateTokenPair(ctx, userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token pair: %v", err)
		}

		if _, err := service.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected a refresh token to be rejected as access token")
		}
	})
}
