package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/i18n"
	"learnloop/internal/pkg/metrics"
	"learnloop/internal/repository"
	"learnloop/internal/service/lookup"
)

// Service derives a user's notifications from follow edges and engagement on their
// posts, and records which derived ids the user has acknowledged.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, locale string) ([]domain.NotificationItem, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

type service struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	readAckRepo repository.ReadAckRepository
	lookup      lookup.Service
}

func NewService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	readAckRepo repository.ReadAckRepository,
	lookupSvc lookup.Service,
) Service {
	return &service{
		userRepo:    userRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		readAckRepo: readAckRepo,
		lookup:      lookupSvc,
	}
}

// derived is a notification item before its message is rendered.
type derived struct {
	id    string
	kind  domain.NotificationKind
	actor uuid.UUID
	read  bool
}

var messageKeys = map[domain.NotificationKind]string{
	domain.NotificationFollow:  "FOLLOW",
	domain.NotificationLike:    "LIKE",
	domain.NotificationComment: "COMMENT",
}

// List returns followers first, then for each of the user's posts (newest first) its
// likes followed by its comments. An unknown user has no notifications.
func (s *service) List(ctx context.Context, userID uuid.UUID, locale string) ([]domain.NotificationItem, error) {
	items, err := s.derive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.NotificationItem{}, nil
	}

	actors := make([]uuid.UUID, len(items))
	for i, it := range items {
		actors[i] = it.actor
	}
	names := s.lookup.Names(ctx, actors, domain.UnknownActorName)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]domain.NotificationItem, 0, len(items))
	for _, it := range items {
		name, ok := names[it.actor]
		if !ok {
			name = domain.UnknownActorName
		}
		result = append(result, domain.NotificationItem{
			ID:      it.id,
			Kind:    it.kind,
			Message: i18n.Format(locale, messageKeys[it.kind], name),
			Read:    it.read,
		})
		metrics.NotificationsDerived.WithLabelValues(string(it.kind)).Inc()
	}
	return result, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	items, err := s.derive(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, it := range items {
		if !it.read {
			count++
		}
	}
	return count, nil
}

// MarkRead records the acknowledgment. Any non-empty id is accepted and repeating
// the call is harmless.
func (s *service) MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error {
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return domain.ErrEmptyNotificationID
	}
	return s.readAckRepo.Insert(ctx, userID, notificationID)
}

// MarkAllRead acknowledges every item currently unread and returns how many there were.
func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	items, err := s.derive(ctx, userID)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !it.read {
			ids = append(ids, it.id)
		}
	}
	if err := s.readAckRepo.InsertMany(ctx, userID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *service) derive(ctx context.Context, userID uuid.UUID) ([]derived, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	followers, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	acked, err := s.readAckRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]derived, 0, len(followers))

	// Follow items stay listed once acknowledged; only their read flag changes.
	for _, followerID := range followers {
		if followerID == uuid.Nil {
			continue
		}
		id := domain.FollowNotificationID(followerID)
		_, read := acked[id]
		items = append(items, derived{id: id, kind: domain.NotificationFollow, actor: followerID, read: read})
	}

	// Like and comment items are dropped entirely once acknowledged.
	for _, post := range posts {
		for _, likerID := range post.Likes {
			if likerID == uuid.Nil {
				continue
			}
			id := domain.LikeNotificationID(post.ID, likerID)
			if _, read := acked[id]; read {
				continue
			}
			items = append(items, derived{id: id, kind: domain.NotificationLike, actor: likerID})
		}
		for _, c := range post.Comments {
			if c.ID == uuid.Nil {
				continue
			}
			id := domain.CommentNotificationID(post.ID, c.ID)
			if _, read := acked[id]; read {
				continue
			}
			items = append(items, derived{id: id, kind: domain.NotificationComment, actor: c.AuthorID})
		}
	}

	return items, nil
}
