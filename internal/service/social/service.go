package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/repository"
	"learnloop/internal/service/email"
	"learnloop/internal/service/push"
)

// Service mutates the social graph. Arguments follow the same shape everywhere:
// userID is the followed user and followerID is the one following them.
type Service interface {
	Follow(ctx context.Context, userID, followerID uuid.UUID) error
	Unfollow(ctx context.Context, userID, followerID uuid.UUID) error
	RemoveFollower(ctx context.Context, userID, followerID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	push       push.Service
	emailSvc   email.Service
}

func NewService(userRepo repository.UserRepository, followRepo repository.FollowRepository, pushSvc push.Service, emailSvc email.Service) Service {
	return &service{
		userRepo:   userRepo,
		followRepo: followRepo,
		push:       pushSvc,
		emailSvc:   emailSvc,
	}
}

func (s *service) Follow(ctx context.Context, userID, followerID uuid.UUID) error {
	if userID == followerID {
		return domain.ErrSelfFollow
	}

	user, follower, err := s.loadPair(ctx, userID, followerID)
	if err != nil {
		return err
	}

	created, err := s.followRepo.Create(ctx, followerID, userID)
	if err != nil || !created {
		return err
	}

	if s.push != nil {
		s.push.NotificationsChanged(userID, domain.NotificationFollow)
	}
	if s.emailSvc != nil && user.Email != "" {
		go func(toEmail, recipientName, followerName string) {
			if err := s.emailSvc.SendNewFollowerEmail(context.Background(), toEmail, recipientName, followerName); err != nil {
				logger.WithModule("social").Warn("failed to send new follower email", zap.Error(err))
			}
		}(user.Email, user.Name, follower.Name)
	}
	return nil
}

// Unfollow removes the edge. A missing edge is not an error.
func (s *service) Unfollow(ctx context.Context, userID, followerID uuid.UUID) error {
	if userID == followerID {
		return domain.ErrSelfFollow
	}
	if _, _, err := s.loadPair(ctx, userID, followerID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, userID)
}

// RemoveFollower is Unfollow initiated by the followed user.
func (s *service) RemoveFollower(ctx context.Context, userID, followerID uuid.UUID) error {
	if userID == followerID {
		return domain.ErrSelfRemoveFollower
	}
	if _, _, err := s.loadPair(ctx, userID, followerID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, userID)
}

func (s *service) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *service) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *service) loadPair(ctx context.Context, userID, followerID uuid.UUID) (*domain.User, *domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		return nil, nil, err
	}
	if follower == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	return user, follower, nil
}

func (s *service) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}
