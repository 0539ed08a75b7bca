package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnloop/internal/domain"
)

// PostRepository is the content store. Engagement changes are single-document atomic
// updates so concurrent likes and comments on one post never overwrite each other.
type PostRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]domain.Post, error)
	Update(ctx context.Context, id string, description string, mediaURLs []string) error
	Delete(ctx context.Context, id string) error
	AddLike(ctx context.Context, postID string, userID uuid.UUID) error
	AddComment(ctx context.Context, postID string, comment domain.Comment) error
	UpdateComment(ctx context.Context, postID string, commentID, authorID uuid.UUID, content string, at time.Time) error
	RemoveComment(ctx context.Context, postID string, commentID, authorID uuid.UUID) error
}

type postDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	AuthorID    string             `bson:"author_id"`
	Description string             `bson:"description"`
	MediaURLs   []string           `bson:"media_urls"`
	Likes       []string           `bson:"likes"`
	Comments    []commentDocument  `bson:"comments"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type commentDocument struct {
	ID        string     `bson:"id"`
	AuthorID  string     `bson:"author_id"`
	Content   string     `bson:"content"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
}

type postRepository struct {
	collection *mongo.Collection
	retry      Retry
}

func NewPostRepository(db *mongo.Database, retry Retry) PostRepository {
	return &postRepository{collection: db.Collection("posts"), retry: retry}
}

func (r *postRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	doc := postDocument{
		ID:          primitive.NewObjectID(),
		AuthorID:    post.AuthorID.String(),
		Description: post.Description,
		MediaURLs:   nonNil(post.MediaURLs),
		Likes:       []string{},
		Comments:    []commentDocument{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.retry.do(ctx, func() error {
		_, err := r.collection.InsertOne(ctx, doc)
		// A retried insert that already landed reports a duplicate id.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	post.ID = doc.ID.Hex()
	post.MediaURLs = doc.MediaURLs
	post.Likes = []uuid.UUID{}
	post.Comments = []domain.Comment{}
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

// GetByID returns nil, nil when no post has this id.
func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc postDocument
	err = r.retry.do(ctx, func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	post := doc.toDomain()
	return &post, nil
}

// ListByAuthor returns the author's posts, newest first.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	return r.find(ctx, bson.M{"author_id": authorID.String()})
}

// ListByAuthors returns posts by any of the given authors, newest first.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}
	keys := make([]string, 0, len(authorIDs))
	for _, id := range authorIDs {
		keys = append(keys, id.String())
	}
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": keys}})
}

func (r *postRepository) find(ctx context.Context, filter bson.M) ([]domain.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	var docs []postDocument
	err := r.retry.do(ctx, func() error {
		cursor, err := r.collection.Find(ctx, filter, findOptions)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		docs = docs[:0]
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

// Update replaces the description, and the media list when mediaURLs is not nil.
func (r *postRepository) Update(ctx context.Context, id string, description string, mediaURLs []string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	set := bson.M{"description": description, "updated_at": time.Now().UTC()}
	if mediaURLs != nil {
		set["media_urls"] = mediaURLs
	}
	return r.updateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, domain.ErrPostNotFound)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	var deleted int64
	err = r.retry.do(ctx, func() error {
		res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike adds userID to the like set. Liking twice leaves one entry.
func (r *postRepository) AddLike(ctx context.Context, postID string, userID uuid.UUID) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrInvalidID
	}
	update := bson.M{"$addToSet": bson.M{"likes": userID.String()}}
	return r.updateOne(ctx, bson.M{"_id": objID}, update, domain.ErrPostNotFound)
}

// AddComment appends the comment unless one with the same id is already present,
// which makes a retried append safe.
func (r *postRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrInvalidID
	}

	filter := bson.M{"_id": objID, "comments.id": bson.M{"$ne": comment.ID.String()}}
	update := bson.M{"$push": bson.M{"comments": commentDocument{
		ID:        comment.ID.String(),
		AuthorID:  comment.AuthorID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}}}

	matched, err := r.update(ctx, filter, update)
	if err != nil || matched > 0 {
		return err
	}

	var count int64
	err = r.retry.do(ctx, func() error {
		var err error
		count, err = r.collection.CountDocuments(ctx, bson.M{"_id": objID})
		return err
	})
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// UpdateComment changes the content of a comment written by authorID.
func (r *postRepository) UpdateComment(ctx context.Context, postID string, commentID, authorID uuid.UUID, content string, at time.Time) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrInvalidID
	}

	filter := bson.M{
		"_id": objID,
		"comments": bson.M{"$elemMatch": bson.M{
			"id":        commentID.String(),
			"author_id": authorID.String(),
		}},
	}
	update := bson.M{"$set": bson.M{
		"comments.$.content":    content,
		"comments.$.updated_at": at,
	}}
	return r.updateOne(ctx, filter, update, domain.ErrCommentNotFound)
}

// RemoveComment pulls the comment written by authorID. Removing an absent comment is a no-op.
func (r *postRepository) RemoveComment(ctx context.Context, postID string, commentID, authorID uuid.UUID) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrInvalidID
	}

	update := bson.M{"$pull": bson.M{"comments": bson.M{
		"id":        commentID.String(),
		"author_id": authorID.String(),
	}}}
	return r.updateOne(ctx, bson.M{"_id": objID}, update, domain.ErrPostNotFound)
}

func (r *postRepository) updateOne(ctx context.Context, filter, update bson.M, notFound error) error {
	matched, err := r.update(ctx, filter, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return notFound
	}
	return nil
}

func (r *postRepository) update(ctx context.Context, filter, update bson.M) (int64, error) {
	var matched int64
	err := r.retry.do(ctx, func() error {
		res, err := r.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return err
		}
		matched = res.MatchedCount
		return nil
	})
	return matched, err
}

func (d *postDocument) toDomain() domain.Post {
	post := domain.Post{
		ID:          d.ID.Hex(),
		Description: d.Description,
		MediaURLs:   nonNil(d.MediaURLs),
		Likes:       make([]uuid.UUID, 0, len(d.Likes)),
		Comments:    make([]domain.Comment, 0, len(d.Comments)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	post.AuthorID, _ = uuid.Parse(d.AuthorID)

	// Malformed or empty entries are dropped rather than failing the whole read.
	for _, raw := range d.Likes {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			post.Likes = append(post.Likes, id)
		}
	}
	for _, c := range d.Comments {
		id, err := uuid.Parse(c.ID)
		if err != nil || id == uuid.Nil {
			continue
		}
		authorID, _ := uuid.Parse(c.AuthorID)
		post.Comments = append(post.Comments, domain.Comment{
			ID:        id,
			AuthorID:  authorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return post
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
