package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"learnloop/internal/domain"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *PostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]domain.Post, error) {
	args := m.Called(ctx, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *PostRepository) Update(ctx context.Context, id string, description string, mediaURLs []string) error {
	args := m.Called(ctx, id, description, mediaURLs)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepository) AddLike(ctx context.Context, postID string, userID uuid.UUID) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *PostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) error {
	args := m.Called(ctx, postID, comment)
	return args.Error(0)
}

func (m *PostRepository) UpdateComment(ctx context.Context, postID string, commentID, authorID uuid.UUID, content string, at time.Time) error {
	args := m.Called(ctx, postID, commentID, authorID, content, at)
	return args.Error(0)
}

func (m *PostRepository) RemoveComment(ctx context.Context, postID string, commentID, authorID uuid.UUID) error {
	args := m.Called(ctx, postID, commentID, authorID)
	return args.Error(0)
}
