package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"learnloop/internal/config"
	"learnloop/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		MinIOPublicEndpoint: "cdn.learnloop.test",
		MinIOBucket:         "learnloop-media",
		MinIOPublicUseSSL:   true,
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	svc := &service{cfg: testConfig()}

	u := svc.PublicURL("posts/2024/05/abc.png")
	assert.Equal(t, "https://cdn.learnloop.test/learnloop-media/posts%2F2024%2F05%2Fabc.png", u)

	p, ok := svc.storagePath(u)
	assert.True(t, ok)
	assert.Equal(t, "posts/2024/05/abc.png", p)
}

func TestStoragePathRejectsForeignURLs(t *testing.T) {
	svc := &service{cfg: testConfig()}

	_, ok := svc.storagePath("https://elsewhere.test/learnloop-media/x.png")
	assert.False(t, ok)

	_, ok = svc.storagePath("https://cdn.learnloop.test/learnloop-media/")
	assert.False(t, ok)
}

func TestWithoutClientReportsUnavailable(t *testing.T) {
	svc := NewService(nil, testConfig())

	_, err := svc.Upload(context.Background(), "posts", domain.Upload{FileName: "a.png", Reader: strings.NewReader("x"), Size: 1})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), "https://cdn.learnloop.test/learnloop-media/a.png"), domain.ErrBlobUnavailable)
}
