package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"learnloop/internal/domain"
)

// FollowRepository stores follow edges. A single row (follower, following) backs both
// the follower's "following" set and the followed user's "followers" set, so the two
// sides can never disagree.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type followRepository struct {
	db    *sqlx.DB
	retry Retry
}

func NewFollowRepository(db *sqlx.DB, retry Retry) FollowRepository {
	return &followRepository{db: db, retry: retry}
}

// Create is idempotent: an existing edge is left untouched and reported as not created.
func (r *followRepository) Create(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING`

	var affected int64
	err := r.retry.do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, followerID, followingID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503":
			return false, domain.ErrUserNotFound
		case "23514":
			return false, domain.ErrSelfFollow
		}
	}
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes the edge if present. Removing a missing edge is not an error.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	return r.retry.do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, followerID, followingID)
		return err
	})
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	err := r.retry.do(ctx, func() error {
		return r.db.GetContext(ctx, &exists, query, followerID, followingID)
	})
	return exists, err
}

// ListFollowers returns the ids following userID, oldest edge first.
func (r *followRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT follower_id FROM follows
		WHERE following_id = $1
		ORDER BY created_at, follower_id`
	return r.selectIDs(ctx, query, userID)
}

// ListFollowing returns the ids userID follows, oldest edge first.
func (r *followRepository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT following_id FROM follows
		WHERE follower_id = $1
		ORDER BY created_at, following_id`
	return r.selectIDs(ctx, query, userID)
}

func (r *followRepository) selectIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.retry.do(ctx, func() error {
		ids = ids[:0]
		return r.db.SelectContext(ctx, &ids, query, userID)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
