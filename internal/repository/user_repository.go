package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"learnloop/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	ClearBio(ctx context.Context, id uuid.UUID) error
	SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	ListSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error)
}

type userRepository struct {
	db    *sqlx.DB
	retry Retry
}

func NewUserRepository(db *sqlx.DB, retry Retry) UserRepository {
	return &userRepository{db: db, retry: retry}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email, user.Bio, user.AvatarURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "users_pkey" {
			return domain.ErrProfileExists
		}
		return domain.ErrEmailTaken
	}
	return err
}

// GetByID returns nil, nil when the user does not exist.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, name, email, bio, avatar_url, created_at, updated_at FROM users WHERE id = $1`

	err := r.retry.do(ctx, func() error {
		return r.db.GetContext(ctx, &user, query, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs returns the users that exist among ids, in no particular order.
func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	keys := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	var users []domain.User
	query := `SELECT id, name, email, bio, avatar_url, created_at, updated_at FROM users WHERE id = ANY($1::uuid[])`
	err := r.retry.do(ctx, func() error {
		users = users[:0]
		return r.db.SelectContext(ctx, &users, query, keys)
	})
	return users, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.retry.do(ctx, func() error {
		return r.db.GetContext(ctx, &exists, query, email)
	})
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET name = $2, bio = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.retry.do(ctx, func() error {
		return r.db.QueryRowxContext(ctx, query, user.ID, user.Name, user.Bio).Scan(&user.UpdatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) ClearBio(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, `UPDATE users SET bio = NULL, updated_at = NOW() WHERE id = $1`, id)
}

func (r *userRepository) SetAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return r.execOne(ctx, `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`, id, avatarURL)
}

// ListSuggestions returns users other than userID that userID does not follow yet.
func (r *userRepository) ListSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.bio, u.avatar_url, u.created_at, u.updated_at
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = u.id
		  )
		ORDER BY u.created_at DESC
		LIMIT $2`

	var users []domain.User
	err := r.retry.do(ctx, func() error {
		users = users[:0]
		return r.db.SelectContext(ctx, &users, query, userID, limit)
	})
	return users, err
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	var affected int64
	err := r.retry.do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
