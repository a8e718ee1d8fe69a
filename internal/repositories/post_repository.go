package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when a post id resolves to no document.
var ErrPostNotFound = errors.New("post not found")

// parsePostID converts a hex post id. A malformed id cannot match any
// document, so it reports ErrPostNotFound rather than a format error.
func parsePostID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrPostNotFound
	}
	return objID, nil
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByKindForUser(ctx context.Context, kind models.PostKind, userID uint) ([]models.Post, error)
	GetTaggedPostsForUser(ctx context.Context, userID uint) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	UpdateBody(ctx context.Context, id, body string) error
	DeletePost(ctx context.Context, id string) error
	DeletePostsByUser(ctx context.Context, userID uint) error
	DeletePostsByGroup(ctx context.Context, groupID uint) error

	AddLike(ctx context.Context, postID string, userID uint) (bool, error)
	RemoveLike(ctx context.Context, postID string, userID uint) error
	AddComment(ctx context.Context, postID string, comment models.CommentEntry) error
	IncrementSharesCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.LikedUsers == nil {
		post.LikedUsers = []models.LikeEntry{}
	}
	if post.Comments == nil {
		post.Comments = []models.CommentEntry{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves a user's posts from MongoDB, newest first
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user_id": userID}, skip, limit)
}

// GetPostsByKindForUser retrieves a user's posts of one kind, newest first
func (r *MongoPostRepository) GetPostsByKindForUser(ctx context.Context, kind models.PostKind, userID uint) ([]models.Post, error) {
	return r.find(ctx, bson.M{"kind": kind, "user_id": userID}, 0, 0)
}

// GetTaggedPostsForUser retrieves posts where the user appears in
// tag_friends, newest first
func (r *MongoPostRepository) GetTaggedPostsForUser(ctx context.Context, userID uint) ([]models.Post, error) {
	return r.find(ctx, bson.M{"tag_friends": userID}, 0, 0)
}

// GetAllPosts retrieves the global feed with pagination, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if skip > 0 {
		findOptions = findOptions.SetSkip(skip)
	}
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateBody updates a post's body text
func (r *MongoPostRepository) UpdateBody(ctx context.Context, id, body string) error {
	objID, err := parsePostID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"body": body, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := parsePostID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePostsByUser removes every post owned by the user
func (r *MongoPostRepository) DeletePostsByUser(ctx context.Context, userID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// DeletePostsByGroup removes every post attached to the group
func (r *MongoPostRepository) DeletePostsByGroup(ctx context.Context, groupID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"group_id": groupID})
	return err
}

// AddLike appends the user to liked_users and bumps likes_count in a single
// document update, guarded so a second like is a no-op. Returns whether the
// like was newly added.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID string, userID uint) (bool, error) {
	objID, err := parsePostID(postID)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": objID, "liked_users.user_id": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"liked_users": models.LikeEntry{UserID: userID, CreatedAt: time.Now()}},
		"$inc":  bson.M{"likes_count": 1},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}

	// Not modified: either already liked (fine) or the post is gone.
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrPostNotFound
	}
	return false, nil
}

// RemoveLike removes the user from liked_users and decrements likes_count in
// a single document update. Removing an absent like is a no-op.
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID string, userID uint) error {
	objID, err := parsePostID(postID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": objID, "liked_users.user_id": userID}
	update := bson.M{
		"$pull": bson.M{"liked_users": bson.M{"user_id": userID}},
		"$inc":  bson.M{"likes_count": -1},
	}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return err
	}
	return nil
}

// AddComment appends a comment entry to the post
func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment models.CommentEntry) error {
	objID, err := parsePostID(postID)
	if err != nil {
		return err
	}

	update := bson.M{"$push": bson.M{"comments": comment}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// IncrementSharesCount bumps the shares counter of the origin post
func (r *MongoPostRepository) IncrementSharesCount(ctx context.Context, postID string) error {
	objID, err := parsePostID(postID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"shares_count": 1}})
	return err
}
