package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ReadAckRepository is the read-acknowledgment log: a set of (user, notification id)
// pairs. Entries are only ever inserted.
type ReadAckRepository interface {
	Insert(ctx context.Context, userID uuid.UUID, notificationID string) error
	InsertMany(ctx context.Context, userID uuid.UUID, notificationIDs []string) error
	ListByUser(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error)
}

type readAckRepository struct {
	db    *sqlx.DB
	retry Retry
}

func NewReadAckRepository(db *sqlx.DB, retry Retry) ReadAckRepository {
	return &readAckRepository{db: db, retry: retry}
}

func (r *readAckRepository) Insert(ctx context.Context, userID uuid.UUID, notificationID string) error {
	query := `
		INSERT INTO notification_reads (user_id, notification_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, notification_id) DO NOTHING`

	return r.retry.do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, notificationID)
		return err
	})
}

func (r *readAckRepository) InsertMany(ctx context.Context, userID uuid.UUID, notificationIDs []string) error {
	if len(notificationIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO notification_reads (user_id, notification_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (user_id, notification_id) DO NOTHING`

	return r.retry.do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, userID, pq.StringArray(notificationIDs))
		return err
	})
}

func (r *readAckRepository) ListByUser(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	var ids []string
	query := `SELECT notification_id FROM notification_reads WHERE user_id = $1`
	err := r.retry.do(ctx, func() error {
		ids = ids[:0]
		return r.db.SelectContext(ctx, &ids, query, userID)
	})
	if err != nil {
		return nil, err
	}

	acked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		acked[id] = struct{}{}
	}
	return acked, nil
}
