package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/repository"
	"learnloop/internal/service/lookup"
	"learnloop/internal/service/media"
	"learnloop/internal/service/push"
)

const (
	MaxAvatarSize      = 2 * 1024 * 1024
	DefaultSuggestions = 10
)

var avatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type Service interface {
	Register(ctx context.Context, userID uuid.UUID, input domain.RegisterProfileInput) (*domain.User, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	DeleteBio(ctx context.Context, userID uuid.UUID) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, file domain.Upload) (*domain.User, error)
	Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error)
}

type service struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	lookup     lookup.Service
	media      media.Service
	push       push.Service
}

func NewService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	lookupSvc lookup.Service,
	mediaSvc media.Service,
	pushSvc push.Service,
) Service {
	return &service{
		userRepo:   userRepo,
		followRepo: followRepo,
		lookup:     lookupSvc,
		media:      mediaSvc,
		push:       pushSvc,
	}
}

// Register creates the profile for an identity that has none yet.
func (s *service) Register(ctx context.Context, userID uuid.UUID, input domain.RegisterProfileInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	user := &domain.User{
		ID:    userID,
		Name:  strings.TrimSpace(input.Name),
		Email: email,
		Bio:   input.Bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{User: *user, Followers: followers, Following: following}, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.lookup.Invalidate(ctx, userID)
	return user, nil
}

func (s *service) DeleteBio(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.ClearBio(ctx, userID)
}

// UploadAvatar stores a png or jpeg of at most 2MB, replaces the previous avatar and
// tells every follower's client about the new picture.
func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, file domain.Upload) (*domain.User, error) {
	if !avatarTypes[strings.ToLower(file.ContentType)] {
		return nil, domain.ErrUnsupportedImage
	}
	if file.Size > MaxAvatarSize {
		return nil, domain.ErrImageTooLarge
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Upload(ctx, fmt.Sprintf("avatars/%s", userID), file)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetAvatar(ctx, userID, url); err != nil {
		_ = s.media.Delete(ctx, url)
		return nil, err
	}

	if user.AvatarURL != nil && *user.AvatarURL != "" {
		if err := s.media.Delete(ctx, *user.AvatarURL); err != nil {
			logger.WithModule("profile").Warn("failed to delete previous avatar", zap.Error(err))
		}
	}
	user.AvatarURL = &url
	s.lookup.Invalidate(ctx, userID)

	if s.push != nil {
		followers, err := s.followRepo.ListFollowers(ctx, userID)
		if err != nil {
			logger.WithModule("profile").Warn("failed to load followers for avatar push", zap.Error(err))
		} else {
			s.push.ProfileUpdated(followers, userID, url)
		}
	}
	return user, nil
}

// Suggestions lists users the caller does not follow yet, newest first.
func (s *service) Suggestions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.User, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = DefaultSuggestions
	}

	users, err := s.userRepo.ListSuggestions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *service) requireUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
