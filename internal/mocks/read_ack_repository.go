package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ReadAckRepository struct {
	mock.Mock
}

func (m *ReadAckRepository) Insert(ctx context.Context, userID uuid.UUID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *ReadAckRepository) InsertMany(ctx context.Context, userID uuid.UUID, notificationIDs []string) error {
	args := m.Called(ctx, userID, notificationIDs)
	return args.Error(0)
}

func (m *ReadAckRepository) ListByUser(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}
