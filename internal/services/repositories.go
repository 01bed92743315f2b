package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avelez/postboard-be/internal/models"
)

// UserRepository is the persistence interface for user records. Implemented
// by internal/store against MongoDB; tests supply in-memory fakes.
type UserRepository interface {
	// Insert persists a new user and fills in its id. A username collision
	// returns ErrUsernameTaken and leaves no record behind.
	Insert(ctx context.Context, user *models.User) error

	// FindByID returns the user or (nil, nil) when the id matches nothing.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByUsername returns the user by exact username match, or (nil, nil).
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// PostRepository is the persistence interface for post records.
type PostRepository interface {
	// Insert persists a new post and fills in its id.
	Insert(ctx context.Context, post *models.Post) error

	// FindByID returns the post with its owner resolved, or (nil, nil) when
	// the id matches nothing.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)

	// FindAll returns every post with its owner resolved, in store order.
	FindAll(ctx context.Context) ([]models.Post, error)

	// FindByOwner returns the posts owned by the given user id. Owners are
	// not resolved on this path.
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error)

	// DeleteByID removes a post. Deleting a missing id returns ErrNotFound.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error

	// UpdateContent replaces a post's content. Updating a missing id returns
	// ErrNotFound.
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error
}
