package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/pkg/metrics"
)

const publishTimeout = 3 * time.Second

// Service publishes best-effort hints on the pub/sub notify channel. Calls return
// immediately; delivery failures are logged and dropped.
type Service interface {
	NotificationsChanged(recipientID uuid.UUID, kind domain.NotificationKind)
	ProfileUpdated(followerIDs []uuid.UUID, userID uuid.UUID, avatarURL string)
}

type ProfileUpdate struct {
	UserID    uuid.UUID `json:"user_id"`
	AvatarURL string    `json:"avatar_url"`
}

type NotificationHint struct {
	Kind domain.NotificationKind `json:"kind"`
}

type service struct {
	redis *redis.Client
	log   *zap.Logger
}

func NewService(redis *redis.Client) Service {
	return &service{redis: redis, log: logger.WithModule("push")}
}

func NotificationsChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func ProfileUpdateChannel(followerID uuid.UUID) string {
	return fmt.Sprintf("profile-update:%s", followerID)
}

func (s *service) NotificationsChanged(recipientID uuid.UUID, kind domain.NotificationKind) {
	if s.redis == nil {
		return
	}
	go s.publish(map[string]interface{}{
		NotificationsChannel(recipientID): NotificationHint{Kind: kind},
	})
}

func (s *service) ProfileUpdated(followerIDs []uuid.UUID, userID uuid.UUID, avatarURL string) {
	if s.redis == nil || len(followerIDs) == 0 {
		return
	}
	msgs := make(map[string]interface{}, len(followerIDs))
	for _, id := range followerIDs {
		msgs[ProfileUpdateChannel(id)] = ProfileUpdate{UserID: userID, AvatarURL: avatarURL}
	}
	go s.publish(msgs)
}

func (s *service) publish(msgs map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	pipe := s.redis.Pipeline()
	for channel, payload := range msgs {
		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		pipe.Publish(ctx, channel, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.PushPublished.WithLabelValues("error").Inc()
		s.log.Warn("push publish failed", zap.Int("channels", len(msgs)), zap.Error(err))
		return
	}
	metrics.PushPublished.WithLabelValues("ok").Add(float64(len(msgs)))
}
