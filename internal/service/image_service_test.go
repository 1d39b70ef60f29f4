package service

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageService_UploadStoresJPEGAndWebP(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(dir, "/uploads", 1)

	content := testutil.TinyPNG(t, 400, 300)
	up, err := svc.Upload(UploadImageInput{
		Username:    "alice",
		Filename:    "avatar.png",
		ContentType: "image/png",
		Content:     content,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(up.URL, "/image.jpg"))
	assert.True(t, strings.HasSuffix(up.WebPURL, "/image.webp"))
	assert.Equal(t, 400, up.Width)
	assert.Equal(t, 300, up.Height)

	for _, u := range []string{up.URL, up.WebPURL} {
		rel := strings.TrimPrefix(u, "/uploads/")
		_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, statErr)
	}

	// Same content by the same user lands on the same files
	again, err := svc.Upload(UploadImageInput{Username: "alice", Content: content})
	require.NoError(t, err)
	assert.Equal(t, up.URL, again.URL)

	other, err := svc.Upload(UploadImageInput{Username: "bob", Content: content})
	require.NoError(t, err)
	assert.NotEqual(t, up.URL, other.URL)
}

func TestImageService_DownscalesLargeImages(t *testing.T) {
	svc := NewImageService(t.TempDir(), "/uploads", 10)

	up, err := svc.Upload(UploadImageInput{Username: "alice", Content: testutil.TinyPNG(t, 3200, 1600)})
	require.NoError(t, err)
	assert.Equal(t, MasterMaxSize, up.Width)
	assert.Equal(t, MasterMaxSize/2, up.Height)
}

func TestImageService_Rejects(t *testing.T) {
	svc := NewImageService(t.TempDir(), "/uploads", 1)

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 10, 10)), nil))

	tests := []struct {
		name string
		in   UploadImageInput
	}{
		{"empty", UploadImageInput{Username: "alice"}},
		{"not an image", UploadImageInput{Username: "alice", Content: []byte("hello, definitely text")}},
		{"too large", UploadImageInput{Username: "alice", Content: make([]byte, 2*1024*1024)}},
		{"declared type mismatch", UploadImageInput{Username: "alice", ContentType: "image/png", Content: jpg.Bytes()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(tt.in)
			requireCode(t, err, models.CodeValidation)
		})
	}
}
