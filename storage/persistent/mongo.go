package persistent

import (
	"context"
	"errors"
	"fmt"
	"socialfeed/storage"
	"socialfeed/storage/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Post is the document layout of the posts collection.
type Post struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	AuthorId  string             `bson:"authorId"`
	Name      string             `bson:"name"`
	Avatar    string             `bson:"avatar"`
	Text      string             `bson:"text"`
	Likes     []models.Like      `bson:"likes"`
	Comments  []models.Comment   `bson:"comments"`
	CreatedAt time.Time          `bson:"createdAt"`
	Version   int64              `bson:"version"`
}

func (p *Post) GetId() string {
	return p.Id.Hex()
}

func (p *Post) toModel() *models.Post {
	post := &models.Post{
		Id:        p.GetId(),
		AuthorId:  p.AuthorId,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Text:      p.Text,
		Likes:     p.Likes,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
		Version:   p.Version,
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return post
}

func fromModel(post *models.Post) Post {
	likes := append(make([]models.Like, 0, len(post.Likes)), post.Likes...)
	comments := make([]models.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		c.CreatedAt = truncateTime(c.CreatedAt)
		comments = append(comments, c)
	}
	return Post{
		AuthorId:  post.AuthorId,
		Name:      post.Name,
		Avatar:    post.Avatar,
		Text:      post.Text,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: truncateTime(post.CreatedAt),
		Version:   post.Version,
	}
}

// Mongo keeps milliseconds only.
func truncateTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

type MongoStorage struct {
	posts  *mongo.Collection
	logger *zap.Logger
}

func (s *MongoStorage) NewId() string {
	return primitive.NewObjectID().Hex()
}

func (s *MongoStorage) AddPost(ctx context.Context, post *models.Post) (*models.Post, error) {
	doc := fromModel(post)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = truncateTime(time.Now())
	}
	doc.Version = 0
	id, err := s.posts.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %s %w", err.Error(), storage.InternalError)
	}
	doc.Id = id.InsertedID.(primitive.ObjectID)
	return doc.toModel(), nil
}

func (s *MongoStorage) GetPost(ctx context.Context, postId string) (*models.Post, error) {
	var result Post
	postMongoId, err := primitive.ObjectIDFromHex(postId)
	if err != nil {
		return nil, fmt.Errorf("failed to convert provided id to Mongo object id %w", storage.InvalidIdError)
	}
	err = s.posts.FindOne(ctx, bson.M{"_id": postMongoId}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no document with id %v: %w", postId, storage.NotFoundError)
		}
		return nil, fmt.Errorf("failed to find post: %s %w", err.Error(), storage.InternalError)
	}
	return result.toModel(), nil
}

func (s *MongoStorage) GetPosts(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %s, %w", err.Error(), storage.InternalError)
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		err := cursor.Close(ctx)
		if err != nil {
			s.logger.Warn("Cursor closing failed", zap.Error(err))
		}
	}(cursor, ctx)

	posts := make([]*models.Post, 0)
	for cursor.Next(ctx) {
		var nextPost Post
		if err = cursor.Decode(&nextPost); err != nil {
			return nil, fmt.Errorf("decode error: %s, %w", err, storage.InternalError)
		}
		posts = append(posts, nextPost.toModel())
	}
	if err = cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %s, %w", err, storage.InternalError)
	}
	return posts, nil
}

// UpdatePost replaces the whole document, filtered on the version the
// caller loaded, so concurrent writers on other replicas cannot interleave.
func (s *MongoStorage) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	var result Post
	postMongoId, err := primitive.ObjectIDFromHex(post.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to convert provided id to Mongo object id %w", storage.InvalidIdError)
	}
	doc := fromModel(post)
	doc.Id = postMongoId
	doc.Version = post.Version + 1

	filter := bson.M{"_id": postMongoId, "version": post.Version}
	upsert := false
	after := options.After
	opt := options.FindOneAndReplaceOptions{
		ReturnDocument: &after,
		Upsert:         &upsert,
	}
	mongoResult := s.posts.FindOneAndReplace(ctx, filter, doc, &opt)
	err = mongoResult.Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = s.posts.FindOne(ctx, bson.M{"_id": postMongoId}).Decode(&result)
			if err == nil {
				return nil, fmt.Errorf("post %s moved from version %d to %d: %w", post.Id, post.Version, result.Version, storage.CollisionError)
			}
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("no document with id %v: %w", post.Id, storage.NotFoundError)
			}
		}
		return nil, fmt.Errorf("failed to update post: %s %s %w", err.Error(), post.Id, storage.InternalError)
	}

	if err = mongoResult.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode error: %s, %w", err, storage.InternalError)
	}
	return result.toModel(), nil
}

func (s *MongoStorage) DeletePost(ctx context.Context, postId string) error {
	postMongoId, err := primitive.ObjectIDFromHex(postId)
	if err != nil {
		return fmt.Errorf("failed to convert provided id to Mongo object id %w", storage.InvalidIdError)
	}
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": postMongoId})
	if err != nil {
		return fmt.Errorf("failed to delete post: %s %w", err.Error(), storage.InternalError)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("no document with id %v: %w", postId, storage.NotFoundError)
	}
	return nil
}

func CreateMongoStorage(dbUrl, dbName string, logger *zap.Logger) storage.Storage {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dbUrl))
	if err != nil {
		panic(err)
	}
	posts := client.Database(dbName).Collection("posts")
	ensurePostsIndexes(ctx, posts)

	return &MongoStorage{
		posts:  posts,
		logger: logger,
	}
}
