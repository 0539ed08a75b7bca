package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"learnloop/internal/pkg/logger"
	"learnloop/internal/pkg/metrics"
	"learnloop/internal/repository"
)

// Card is the part of a user needed to render an actor or author.
type Card struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Service resolves display data for user ids. It never fails: ids that cannot be
// resolved within the lookup timeout are simply absent from the result.
type Service interface {
	Cards(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]Card
	Names(ctx context.Context, ids []uuid.UUID, fallback string) map[uuid.UUID]string
	Invalidate(ctx context.Context, id uuid.UUID)
}

type service struct {
	userRepo repository.UserRepository
	redis    *redis.Client
	timeout  time.Duration
	ttl      time.Duration
}

func NewService(userRepo repository.UserRepository, redis *redis.Client, timeout, ttl time.Duration) Service {
	return &service{
		userRepo: userRepo,
		redis:    redis,
		timeout:  timeout,
		ttl:      ttl,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:card:%s", id)
}

func (s *service) Cards(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]Card {
	unique := dedupe(ids)
	cards := make(map[uuid.UUID]Card, len(unique))
	if len(unique) == 0 {
		return cards
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	missing := unique
	if s.redis != nil {
		missing = s.fromCache(ctx, unique, cards)
	}
	if len(missing) == 0 {
		return cards
	}

	users, err := s.userRepo.GetByIDs(ctx, missing)
	if err != nil {
		logger.WithModule("lookup").Warn("user lookup failed",
			zap.Int("ids", len(missing)),
			zap.Error(err),
		)
		return cards
	}

	var pipe redis.Pipeliner
	if s.redis != nil {
		pipe = s.redis.Pipeline()
	}
	for _, u := range users {
		card := Card{Name: u.Name, AvatarURL: u.AvatarURL}
		cards[u.ID] = card
		if pipe != nil {
			if data, err := json.Marshal(card); err == nil {
				pipe.Set(ctx, cacheKey(u.ID), data, s.ttl)
			}
		}
	}
	if pipe != nil && len(users) > 0 {
		_, _ = pipe.Exec(ctx)
	}

	return cards
}

// Names maps every id to a display name, using fallback for ids that did not resolve.
func (s *service) Names(ctx context.Context, ids []uuid.UUID, fallback string) map[uuid.UUID]string {
	cards := s.Cards(ctx, ids)
	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if _, done := names[id]; done {
			continue
		}
		if card, ok := cards[id]; ok && card.Name != "" {
			names[id] = card.Name
			continue
		}
		metrics.NameFallbacks.Inc()
		names[id] = fallback
	}
	return names
}

func (s *service) Invalidate(ctx context.Context, id uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, cacheKey(id)).Err()
	}
}

// fromCache fills cards from redis and returns the ids it could not serve.
func (s *service) fromCache(ctx context.Context, ids []uuid.UUID, cards map[uuid.UUID]Card) []uuid.UUID {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		return ids
	}

	missing := make([]uuid.UUID, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if ok {
			var card Card
			if json.Unmarshal([]byte(raw), &card) == nil {
				cards[ids[i]] = card
				continue
			}
		}
		missing = append(missing, ids[i])
	}
	return missing
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
