package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avelez/postboard-be/internal/models"
)

// TokenVerifier is the part of the session token codec needed to resolve a
// presented token back to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SessionServiceProvider resolves bearer tokens to user records. It backs the
// query layer's authentication decorator.
type SessionServiceProvider interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// SessionService verifies a token and loads the user it references. Exactly
// one user lookup per call; no caching.
type SessionService struct {
	tokens TokenVerifier
	users  UserRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(tokens TokenVerifier, users UserRepository) *SessionService {
	return &SessionService{tokens: tokens, users: users}
}

// ResolveToken validates the token and returns the user it was issued for. A
// bad token, a malformed user id, or a user that no longer exists all fail.
func (s *SessionService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("token carries a malformed user id: %w", err)
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

var _ SessionServiceProvider = (*SessionService)(nil)
