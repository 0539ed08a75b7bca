package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"learnloop/internal/domain"
	"learnloop/internal/service/lookup"
)

type LookupService struct {
	mock.Mock
}

func (m *LookupService) Cards(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]lookup.Card {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return map[uuid.UUID]lookup.Card{}
	}
	return args.Get(0).(map[uuid.UUID]lookup.Card)
}

func (m *LookupService) Names(ctx context.Context, ids []uuid.UUID, fallback string) map[uuid.UUID]string {
	args := m.Called(ctx, ids, fallback)
	if args.Get(0) == nil {
		return map[uuid.UUID]string{}
	}
	return args.Get(0).(map[uuid.UUID]string)
}

func (m *LookupService) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

type PushService struct {
	mock.Mock
}

func (m *PushService) NotificationsChanged(recipientID uuid.UUID, kind domain.NotificationKind) {
	m.Called(recipientID, kind)
}

func (m *PushService) ProfileUpdated(followerIDs []uuid.UUID, userID uuid.UUID, avatarURL string) {
	m.Called(followerIDs, userID, avatarURL)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNewFollowerEmail(ctx context.Context, toEmail, recipientName, followerName string) error {
	args := m.Called(ctx, toEmail, recipientName, followerName)
	return args.Error(0)
}

type MediaService struct {
	mock.Mock
}

func (m *MediaService) Upload(ctx context.Context, prefix string, file domain.Upload) (string, error) {
	args := m.Called(ctx, prefix, file)
	return args.String(0), args.Error(1)
}

func (m *MediaService) Delete(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

func (m *MediaService) PublicURL(storagePath string) string {
	args := m.Called(storagePath)
	return args.String(0)
}
