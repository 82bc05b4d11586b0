package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/storage"
)

func newPhotoFixture(t *testing.T) (*PhotoService, *mockStore) {
	t.Helper()
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", Status: models.StatusActive},
	}}
	equipment := newEquipmentService(t, store, "2024-06-20")
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewPhotoService(equipment, local, zap.NewNop()), store
}

func pngUpload(t *testing.T) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 40))))
	return &buf
}

func TestPhotoServiceAttach(t *testing.T) {
	photos, store := newPhotoFixture(t)

	record, err := photos.Attach(context.Background(), 1, "boiler front.png", pngUpload(t))
	require.NoError(t, err)
	assert.Equal(t, "1_boiler front.png", record.Photo)
	assert.Equal(t, "1_boiler front.png", store.records[0].Photo)

	file, err := photos.Open(context.Background(), 1)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestPhotoServiceAttachStripsPathComponents(t *testing.T) {
	photos, store := newPhotoFixture(t)

	_, err := photos.Attach(context.Background(), 1, "../../etc/passwd.png", pngUpload(t))
	require.NoError(t, err)
	assert.Equal(t, "1_passwd.png", store.records[0].Photo)
}

func TestPhotoServiceAttachUnknownRecord(t *testing.T) {
	photos, _ := newPhotoFixture(t)

	_, err := photos.Attach(context.Background(), 42, "x.png", pngUpload(t))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPhotoServiceAttachRejectsNonImage(t *testing.T) {
	photos, store := newPhotoFixture(t)

	_, err := photos.Attach(context.Background(), 1, "notes.txt", bytes.NewReader([]byte("plain text")))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.records[0].Photo)
}

func TestPhotoServiceOpenWithoutPhoto(t *testing.T) {
	photos, _ := newPhotoFixture(t)

	_, err := photos.Open(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
