package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avelez/postboard-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	Create(ctx context.Context, content string, owner *models.User) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error)
	Delete(ctx context.Context, id string, requester *models.User) (*models.Post, error)
	UpdateContent(ctx context.Context, id string, requester *models.User, content string) (*models.Post, error)
}

// PostService provides business logic for post management.
type PostService struct {
	posts PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create persists a new post owned by the given user. The returned post
// carries the owner inline.
func (s *PostService) Create(ctx context.Context, content string, owner *models.User) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	post := &models.Post{
		UserID:  owner.ID,
		Content: content,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}

	post.Owner = owner
	return post, nil
}

// GetByID fetches a post with its owner resolved. A missing or malformed id
// returns ErrNotFound.
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListAll returns every post with its owner resolved, in whatever order the
// store returns them.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.posts.FindAll(ctx)
}

// ListByOwner returns the posts owned by the given user id. Owners are not
// resolved on this path.
func (s *PostService) ListByOwner(ctx context.Context, ownerID string) ([]models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.posts.FindByOwner(ctx, oid)
}

// Delete removes a post after checking the requester owns it. A repeated
// delete of the same id reports ErrNotFound on the read, never a silent
// second success. The deleted post is returned.
func (s *PostService) Delete(ctx context.Context, id string, requester *models.User) (*models.Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != requester.ID {
		return nil, ErrNotOwner
	}

	if err := s.posts.DeleteByID(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateContent replaces a post's content after checking the requester owns
// it, and returns the updated post with its owner resolved.
func (s *PostService) UpdateContent(ctx context.Context, id string, requester *models.User, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != requester.ID {
		return nil, ErrNotOwner
	}

	if err := s.posts.UpdateContent(ctx, post.ID, content); err != nil {
		return nil, err
	}

	post.Content = content
	return post, nil
}

var _ PostServiceProvider = (*PostService)(nil)
