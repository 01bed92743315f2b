package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/avelez/postboard-be/internal/models"
	"github.com/avelez/postboard-be/internal/services"
)

// PostRepo persists posts in the "posts" collection. Owner joins are done
// with a $lookup against the users collection.
type PostRepo struct {
	col *mongo.Collection
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{col: db.Collection("posts")}
}

// postWithOwner is the decode target for the owner-join aggregation.
type postWithOwner struct {
	models.Post `bson:",inline"`
	Owner       *models.User `bson:"owner"`
}

// ownerLookupStages joins each post's user_id against the users collection
// into a single "owner" document. preserveNullAndEmptyArrays keeps posts
// whose owner record has disappeared.
func ownerLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// Insert persists a new post and fills in its id.
func (r *PostRepo) Insert(ctx context.Context, post *models.Post) error {
	post.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}

	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns the post with its owner resolved, or (nil, nil) when the
// id matches nothing.
func (r *PostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, ownerLookupStages()...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var docs []postWithOwner
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	post := docs[0].Post
	post.Owner = docs[0].Owner
	return &post, nil
}

// FindAll returns every post with its owner resolved, in store order.
func (r *PostRepo) FindAll(ctx context.Context) ([]models.Post, error) {
	cur, err := r.col.Aggregate(ctx, ownerLookupStages())
	if err != nil {
		return nil, err
	}

	var docs []postWithOwner
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		post := doc.Post
		post.Owner = doc.Owner
		posts = append(posts, post)
	}
	return posts, nil
}

// FindByOwner returns the posts owned by the given user id, without the
// owner join.
func (r *PostRepo) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteByID removes a post. A missing id returns ErrNotFound so a repeated
// delete cannot report success twice.
func (r *PostRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// UpdateContent replaces a post's content.
func (r *PostRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

var _ services.PostRepository = (*PostRepo)(nil)
