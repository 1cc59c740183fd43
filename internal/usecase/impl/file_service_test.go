package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"pgbee/config"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/infra/storage"
	mockRepo "pgbee/internal/mocks/repository"
	"pgbee/internal/usecase"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestFileService(t *testing.T, maxSize int64) (usecase.FileUsecase, *mockRepo.MockFileRepository) {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	fileRepo := mockRepo.NewMockFileRepository(t)
	svc := NewFileService(FileServiceParams{
		FileRepo: fileRepo,
		Storage:  storage.NewWithBucket(bucket, "https://cdn.pgbee.in", discardLogger()),
		Config:   &config.Config{Storage: &config.StorageConfig{MaxUploadSize: maxSize}},
		Logger:   discardLogger(),
	})

	return svc, fileRepo
}

func TestFileService_Upload_PNG(t *testing.T) {
	svc, fileRepo := newTestFileService(t, 1<<20)
	ctx := context.Background()
	userID := uuid.New()

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	fileRepo.On("Create", ctx, mock.AnythingOfType("*entity.File")).Return(nil).Once()

	file, err := svc.Upload(ctx, &usecase.UploadInput{
		UserID:      userID,
		Filename:    "room.png",
		ContentType: "application/octet-stream",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Key, ".png"))
	assert.Equal(t, "https://cdn.pgbee.in/"+file.Key, file.Location)
	assert.Equal(t, int64(len(body)), file.Size)
	assert.NotEmpty(t, file.ETag)
	assert.Equal(t, userID, file.UserID)
}

func TestFileService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		size    int64
		wantErr error
	}{
		{
			name:    "declared size over limit",
			body:    pngHeader,
			size:    1 << 30,
			wantErr: domainerrors.ErrFileTooLarge,
		},
		{
			name:    "actual size over limit",
			body:    append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 4096)...),
			wantErr: domainerrors.ErrFileTooLarge,
		},
		{
			name:    "plain text",
			body:    []byte("hello, this is not an image"),
			wantErr: domainerrors.ErrUnsupportedFileType,
		},
		{
			name:    "gif",
			body:    []byte("GIF89a\x01\x00\x01\x00"),
			wantErr: domainerrors.ErrUnsupportedFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestFileService(t, 1024)

			_, err := svc.Upload(context.Background(), &usecase.UploadInput{
				UserID:      uuid.New(),
				ContentType: "image/png",
				Size:        tt.size,
				Body:        bytes.NewReader(tt.body),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestFileService_Upload_ReadFailure(t *testing.T) {
	svc, _ := newTestFileService(t, 1024)

	_, err := svc.Upload(context.Background(), &usecase.UploadInput{UserID: uuid.New(), Body: failingReader{}})
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}

func TestFileService_GetByKey(t *testing.T) {
	svc, fileRepo := newTestFileService(t, 1024)
	ctx := context.Background()

	fileRepo.On("FindByKey", ctx, "missing.png").Return(nil, domainerrors.ErrFileNotFound).Once()
	_, err := svc.GetByKey(ctx, "missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)

	fileRepo.On("FindByKey", ctx, "a.png").Return(&entity.File{Key: "a.png"}, nil).Once()
	file, err := svc.GetByKey(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "a.png", file.Key)
}
