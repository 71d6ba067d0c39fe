package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "pawnder-backend/internal/config"
	"pawnder-backend/internal/models"
)

func TestMediaServiceDisabledWithoutBucket(t *testing.T) {
	svc, err := NewMediaService(context.Background(), appconfig.AWSConfig{})
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	_, err = svc.PresignUpload(context.Background(), &models.User{ID: "u1"}, "rex.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrMediaDisabled)
}

func newTestMediaService(t *testing.T) *MediaService {
	t.Helper()
	svc, err := NewMediaService(context.Background(), appconfig.AWSConfig{
		Region:    "us-east-1",
		S3Bucket:  "pawnder-photos",
		AccessKey: "AKIATEST",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000/",
	})
	require.NoError(t, err)
	require.True(t, svc.Enabled())
	return svc
}

func TestPresignUpload(t *testing.T) {
	svc := newTestMediaService(t)
	user := &models.User{ID: "u1"}

	resp, err := svc.PresignUpload(context.Background(), user, "Rex.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.UploadURL, "http://localhost:9000/pawnder-photos/dogs/u1/"), resp.UploadURL)
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature=")
	assert.True(t, strings.HasPrefix(resp.PhotoURL, "http://localhost:9000/pawnder-photos/dogs/u1/"), resp.PhotoURL)
	assert.True(t, strings.HasSuffix(resp.PhotoURL, ".png"))
	assert.Equal(t, 300, resp.ExpiresIn)
}

func TestPresignUploadValidation(t *testing.T) {
	svc := newTestMediaService(t)
	ctx := context.Background()

	_, err := svc.PresignUpload(ctx, nil, "rex.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = svc.PresignUpload(ctx, &models.User{ID: "u1"}, " ", "image/jpeg")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PresignUpload(ctx, &models.User{ID: "u1"}, "notes.txt", "text/plain")
	assert.ErrorIs(t, err, ErrValidation)

	resp, err := svc.PresignUpload(ctx, &models.User{ID: "u1"}, "rex", "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.PhotoURL, ".jpg"))
}
