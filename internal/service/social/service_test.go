package social_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"learnloop/internal/domain"
	"learnloop/internal/mocks"
	"learnloop/internal/service/social"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	alice := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	bob := &domain.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com"}

	t.Run("New edge notifies the followed user", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		pushSvc := new(mocks.PushService)
		svc := social.NewService(users, follows, pushSvc, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(bob, nil)
		follows.On("Create", ctx, bob.ID, alice.ID).Return(true, nil).Once()
		pushSvc.On("NotificationsChanged", alice.ID, domain.NotificationFollow).Once()

		err := svc.Follow(ctx, alice.ID, bob.ID)

		assert.NoError(t, err)
		follows.AssertExpectations(t)
		pushSvc.AssertExpectations(t)
	})

	t.Run("Existing edge is a no-op", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		pushSvc := new(mocks.PushService)
		svc := social.NewService(users, follows, pushSvc, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(bob, nil)
		follows.On("Create", ctx, bob.ID, alice.ID).Return(false, nil).Once()

		err := svc.Follow(ctx, alice.ID, bob.ID)

		assert.NoError(t, err)
		pushSvc.AssertNotCalled(t, "NotificationsChanged", mock.Anything, mock.Anything)
	})

	t.Run("Self follow", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		err := svc.Follow(ctx, alice.ID, alice.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown follower", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(nil, nil)

		err := svc.Follow(ctx, alice.ID, bob.ID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Store failure leaves no side effects", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		pushSvc := new(mocks.PushService)
		svc := social.NewService(users, follows, pushSvc, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(bob, nil)
		follows.On("Create", ctx, bob.ID, alice.ID).Return(false, domain.ErrStoreUnavailable)

		err := svc.Follow(ctx, alice.ID, bob.ID)

		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		pushSvc.AssertNotCalled(t, "NotificationsChanged", mock.Anything, mock.Anything)
	})
}

func TestUnfollowAndRemoveFollower(t *testing.T) {
	ctx := context.Background()
	alice := &domain.User{ID: uuid.New(), Name: "Alice"}
	bob := &domain.User{ID: uuid.New(), Name: "Bob"}

	t.Run("Unfollow deletes the edge", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(bob, nil)
		follows.On("Delete", ctx, bob.ID, alice.ID).Return(nil).Twice()

		assert.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
		assert.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
		follows.AssertExpectations(t)
	})

	t.Run("Remove follower deletes the same edge", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		users.On("GetByID", ctx, alice.ID).Return(alice, nil)
		users.On("GetByID", ctx, bob.ID).Return(bob, nil)
		follows.On("Delete", ctx, bob.ID, alice.ID).Return(nil).Once()

		assert.NoError(t, svc.RemoveFollower(ctx, alice.ID, bob.ID))
		follows.AssertExpectations(t)
	})

	t.Run("Self", func(t *testing.T) {
		svc := social.NewService(new(mocks.UserRepository), new(mocks.FollowRepository), nil, nil)

		assert.ErrorIs(t, svc.Unfollow(ctx, alice.ID, alice.ID), domain.ErrInvalidArgument)
		assert.ErrorIs(t, svc.RemoveFollower(ctx, alice.ID, alice.ID), domain.ErrInvalidArgument)
	})

	t.Run("Unknown user", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		users.On("GetByID", ctx, alice.ID).Return(nil, nil)

		err := svc.Unfollow(ctx, alice.ID, bob.ID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		follows.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Store error surfaces", func(t *testing.T) {
		users := new(mocks.UserRepository)
		follows := new(mocks.FollowRepository)
		svc := social.NewService(users, follows, nil, nil)

		users.On("GetByID", ctx, alice.ID).Return(nil, errors.New("connection reset"))

		assert.Error(t, svc.RemoveFollower(ctx, alice.ID, bob.ID))
	})
}

func TestFollowersAndFollowing(t *testing.T) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	users := new(mocks.UserRepository)
	follows := new(mocks.FollowRepository)
	svc := social.NewService(users, follows, nil, nil)

	users.On("GetByID", ctx, alice).Return(&domain.User{ID: alice}, nil)
	follows.On("ListFollowers", ctx, alice).Return([]uuid.UUID{bob}, nil)
	follows.On("ListFollowing", ctx, alice).Return([]uuid.UUID{}, nil)

	followers, err := svc.Followers(ctx, alice)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob}, followers)

	following, err := svc.Following(ctx, alice)
	assert.NoError(t, err)
	assert.Empty(t, following)
}
