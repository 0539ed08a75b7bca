package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"learnloop/internal/config"
	"learnloop/internal/repository"
	"learnloop/internal/service/auth"
	"learnloop/internal/service/email"
	"learnloop/internal/service/feed"
	"learnloop/internal/service/lookup"
	"learnloop/internal/service/media"
	"learnloop/internal/service/notification"
	"learnloop/internal/service/post"
	"learnloop/internal/service/profile"
	"learnloop/internal/service/push"
	"learnloop/internal/service/social"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Lookup       lookup.Service
	Media        media.Service
	Push         push.Service
	Notification notification.Service
	Feed         feed.Service
	Social       social.Service
	Post         post.Service
	Profile      profile.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	authService := auth.NewService(cfg)
	lookupService := lookup.NewService(repos.User, redis, cfg.LookupTimeout, cfg.NameCacheTTL)
	mediaService := media.NewService(minioClient, cfg)
	pushService := push.NewService(redis)

	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		emailService = email.NewService(cfg)
	}

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Lookup:       lookupService,
		Media:        mediaService,
		Push:         pushService,
		Notification: notification.NewService(repos.User, repos.Follow, repos.Post, repos.ReadAck, lookupService),
		Feed:         feed.NewService(repos.User, repos.Follow, repos.Post, lookupService),
		Social:       social.NewService(repos.User, repos.Follow, pushService, emailService),
		Post:         post.NewService(repos.Post, repos.User, mediaService, pushService),
		Profile:      profile.NewService(repos.User, repos.Follow, lookupService, mediaService, pushService),
	}
}
