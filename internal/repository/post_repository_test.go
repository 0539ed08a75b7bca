package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"learnloop/internal/domain"
	"learnloop/internal/repository"
)

const postsNS = "learnloop.posts"

func updated(n int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func TestPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("ListByAuthor drops malformed entries", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		author, liker, commentID := uuid.New(), uuid.New(), uuid.New()
		created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, postsNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "author_id", Value: author.String()},
				{Key: "description", Value: "finished chapter 3"},
				{Key: "likes", Value: bson.A{liker.String(), "", "not-a-uuid"}},
				{Key: "comments", Value: bson.A{
					bson.D{
						{Key: "id", Value: commentID.String()},
						{Key: "author_id", Value: liker.String()},
						{Key: "content", Value: "nice"},
						{Key: "created_at", Value: created},
					},
					bson.D{{Key: "id", Value: ""}, {Key: "content", Value: "orphan"}},
				}},
				{Key: "created_at", Value: created},
			}),
			mtest.CreateCursorResponse(0, postsNS, mtest.NextBatch),
		)

		posts, err := repo.ListByAuthor(ctx, author)

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, author, posts[0].AuthorID)
		assert.Equal(t, []uuid.UUID{liker}, posts[0].Likes)
		require.Len(t, posts[0].Comments, 1)
		assert.Equal(t, commentID, posts[0].Comments[0].ID)
		assert.Equal(t, "nice", posts[0].Comments[0].Content)
		assert.NotNil(t, posts[0].MediaURLs)
	})

	mt.Run("ListByAuthors with no authors skips the query", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})

		posts, err := repo.ListByAuthors(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	mt.Run("GetByID", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))
		post, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		assert.NoError(t, err)
		assert.Nil(t, post)
	})

	mt.Run("Create assigns id and timestamps", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &domain.Post{AuthorID: uuid.New(), Description: "day 1"}
		require.NoError(t, repo.Create(ctx, post))

		_, err := primitive.ObjectIDFromHex(post.ID)
		assert.NoError(t, err)
		assert.False(t, post.CreatedAt.IsZero())
		assert.NotNil(t, post.Likes)
		assert.NotNil(t, post.Comments)
	})

	mt.Run("AddLike", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		postID := primitive.NewObjectID().Hex()

		mt.AddMockResponses(updated(1))
		assert.NoError(t, repo.AddLike(ctx, postID, uuid.New()))

		mt.AddMockResponses(updated(0))
		assert.ErrorIs(t, repo.AddLike(ctx, postID, uuid.New()), domain.ErrPostNotFound)
	})

	mt.Run("AddComment is safe to repeat", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		postID := primitive.NewObjectID().Hex()
		comment := domain.Comment{ID: uuid.New(), AuthorID: uuid.New(), Content: "nice", CreatedAt: time.Now()}

		mt.AddMockResponses(updated(1))
		assert.NoError(t, repo.AddComment(ctx, postID, comment))

		// The guard on comments.id filters the post out; it still exists.
		mt.AddMockResponses(
			updated(0),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)
		assert.NoError(t, repo.AddComment(ctx, postID, comment))
	})

	mt.Run("AddComment on missing post", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		comment := domain.Comment{ID: uuid.New(), AuthorID: uuid.New(), Content: "nice"}

		mt.AddMockResponses(
			updated(0),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch),
		)
		assert.ErrorIs(t, repo.AddComment(ctx, primitive.NewObjectID().Hex(), comment), domain.ErrPostNotFound)
	})

	mt.Run("UpdateComment requires a matching author", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		postID := primitive.NewObjectID().Hex()

		mt.AddMockResponses(updated(1))
		assert.NoError(t, repo.UpdateComment(ctx, postID, uuid.New(), uuid.New(), "edited", time.Now()))

		mt.AddMockResponses(updated(0))
		err := repo.UpdateComment(ctx, postID, uuid.New(), uuid.New(), "edited", time.Now())
		assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	})

	mt.Run("RemoveComment", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})

		mt.AddMockResponses(updated(1))
		assert.NoError(t, repo.RemoveComment(ctx, primitive.NewObjectID().Hex(), uuid.New(), uuid.New()))
	})

	mt.Run("Delete", func(mt *mtest.T) {
		repo := repository.NewPostRepository(mt.DB, repository.Retry{})
		postID := primitive.NewObjectID().Hex()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(t, repo.Delete(ctx, postID))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		assert.ErrorIs(t, repo.Delete(ctx, postID), domain.ErrPostNotFound)
	})
}
