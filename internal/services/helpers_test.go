package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/avelez/postboard-be/internal/models"
)

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *memUserRepo) delete(id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type memPostRepo struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	posts map[primitive.ObjectID]models.Post
	users *memUserRepo
}

func newMemPostRepo(users *memUserRepo) *memPostRepo {
	return &memPostRepo{posts: make(map[primitive.ObjectID]models.Post), users: users}
}

func (r *memPostRepo) Insert(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	r.posts[post.ID] = models.Post{ID: post.ID, UserID: post.UserID, Content: post.Content}
	r.order = append(r.order, post.ID)
	return nil
}

func (r *memPostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	p, ok := r.posts[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	p.Owner, _ = r.users.FindByID(ctx, p.UserID)
	return &p, nil
}

func (r *memPostRepo) FindAll(ctx context.Context) ([]models.Post, error) {
	r.mu.Lock()
	ids := append([]primitive.ObjectID(nil), r.order...)
	r.mu.Unlock()

	var posts []models.Post
	for _, id := range ids {
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (r *memPostRepo) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []models.Post
	for _, id := range r.order {
		if p, ok := r.posts[id]; ok && p.UserID == ownerID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *memPostRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) UpdateContent(_ context.Context, id primitive.ObjectID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Content = content
	r.posts[id] = p
	return nil
}

var (
	_ UserRepository = (*memUserRepo)(nil)
	_ PostRepository = (*memPostRepo)(nil)
)
