// Package store implements the service repository interfaces on MongoDB.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avelez/postboard-be/internal/models"
	"github.com/avelez/postboard-be/internal/services"
)

// UserRepo persists users in the "users" collection.
type UserRepo struct {
	col *mongo.Collection
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// EnsureIndexes creates the unique index on username. Registration relies on
// this index to reject duplicates.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure username index: %w", err)
	}
	return nil
}

// Insert persists a new user and fills in its id.
func (r *UserRepo) Insert(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrUsernameTaken
		}
		return err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the user or (nil, nil) when the id matches nothing.
func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the user by exact username match, or (nil, nil).
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var _ services.UserRepository = (*UserRepo)(nil)
