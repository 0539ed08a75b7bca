package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"learnloop/internal/config"
	"learnloop/internal/domain"
)

// Service is the blob store for post media and avatars.
type Service interface {
	Upload(ctx context.Context, prefix string, file domain.Upload) (string, error)
	Delete(ctx context.Context, publicURL string) error
	PublicURL(storagePath string) string
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// Upload stores the file under prefix/yyyy/mm/<uuid><ext> and returns its public URL.
func (s *service) Upload(ctx context.Context, prefix string, file domain.Upload) (string, error) {
	if s.minioClient == nil {
		return "", domain.ErrBlobUnavailable
	}

	storagePath := fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().Format("2006/01"), uuid.New(), strings.ToLower(path.Ext(file.FileName)))

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, file.Reader, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBlobUnavailable, err)
	}

	return s.PublicURL(storagePath), nil
}

// Delete removes the object behind a URL previously returned by Upload.
// URLs that do not point into this bucket are ignored.
func (s *service) Delete(ctx context.Context, publicURL string) error {
	if s.minioClient == nil {
		return domain.ErrBlobUnavailable
	}

	storagePath, ok := s.storagePath(publicURL)
	if !ok {
		return nil
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(storagePath string) string {
	return s.baseURL() + url.PathEscape(storagePath)
}

func (s *service) baseURL() string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket)
}

func (s *service) storagePath(publicURL string) (string, bool) {
	escaped, ok := strings.CutPrefix(publicURL, s.baseURL())
	if !ok || escaped == "" {
		return "", false
	}
	storagePath, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return storagePath, true
}
