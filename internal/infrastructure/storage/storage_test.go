package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/pkg/config"
)

func TestDisabled_ReportsUnavailable(t *testing.T) {
	ctx := context.Background()
	var s Disabled
	assert.ErrorIs(t, s.Put(ctx, "k", "text/plain", nil), domain.ErrStorageUnavailable)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "k"), domain.ErrStorageUnavailable)
	_, _, err = s.PresignGet(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestNewS3Storage_RequiresCredentials(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.StorageConfig{Bucket: "docs"}, nil)
	assert.Error(t, err)
}

func TestS3Storage_PresignIsOffline(t *testing.T) {
	s, err := NewS3Storage(context.Background(), config.StorageConfig{
		Endpoint: "localhost:9000", Region: "eu-west-3", Bucket: "docs",
		AccessKey: "minio", SecretKey: "minio123", UsePathStyle: true,
		PresignExpiration: 5 * time.Minute,
	}, nil)
	require.NoError(t, err)

	url, exp, err := s.PresignGet(context.Background(), "notices/n1.pdf")
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/docs/notices/n1.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)
}
