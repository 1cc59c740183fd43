package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/fx"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const (
	defaultMaxUploadSize = 5 << 20
	sniffLen             = 3072
)

// allowedUploadTypes maps accepted MIME types to the key extension.
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type fileService struct {
	fileRepo      repository.FileRepository
	storage       service.FileStorage
	maxUploadSize int64
	logger        *slog.Logger
}

// FileServiceParams holds dependencies for the file service, injected by Fx.
type FileServiceParams struct {
	fx.In

	FileRepo repository.FileRepository
	Storage  service.FileStorage
	Config   *config.Config
	Logger   *slog.Logger
}

// NewFileService creates a new file service instance
func NewFileService(params FileServiceParams) usecase.FileUsecase {
	maxSize := int64(defaultMaxUploadSize)
	if params.Config.Storage != nil && params.Config.Storage.MaxUploadSize > 0 {
		maxSize = params.Config.Storage.MaxUploadSize
	}

	return &fileService{
		fileRepo:      params.FileRepo,
		storage:       params.Storage,
		maxUploadSize: maxSize,
		logger:        params.Logger,
	}
}

// Upload sniffs the leading bytes rather than trusting the declared content
// type, stores the object under a fresh UUID key and records its metadata.
func (s *fileService) Upload(ctx context.Context, input *usecase.UploadInput) (*entity.File, error) {
	if input.Size > s.maxUploadSize {
		return nil, domainerrors.ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(input.Body, head)
	if err != nil && !errors.IsAny(err, io.EOF, io.ErrUnexpectedEOF) {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	head = head[:n]

	contentType := mimetype.Detect(head).String()
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return nil, domainerrors.ErrUnsupportedFileType.WithDetails(contentType)
	}

	key := uuid.NewString() + ext
	// One byte past the limit is enough to tell an oversized body apart.
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), input.Body), s.maxUploadSize+1)

	obj, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store upload")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if obj.Size > s.maxUploadSize {
		if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.Warn("Failed to remove oversized upload", slog.String("key", key), slog.String("error", err.Error()))
		}

		return nil, domainerrors.ErrFileTooLarge
	}

	file := &entity.File{
		UserID:      input.UserID,
		HostelID:    input.HostelID,
		Key:         obj.Key,
		Location:    obj.Location,
		ETag:        obj.ETag,
		ContentType: contentType,
		Size:        obj.Size,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			logger.Warn("Failed to remove orphaned upload", slog.String("key", key), slog.String("error", delErr.Error()))
		}

		return nil, errors.Wrap(err, "failed to record upload")
	}

	logger.Info("File uploaded",
		slog.String("key", key),
		slog.String("contentType", contentType),
		slog.Int64("size", obj.Size),
	)

	return file, nil
}

func (s *fileService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.File, error) {
	files, err := s.fileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list files")
	}

	return files, nil
}

func (s *fileService) GetByKey(ctx context.Context, key string) (*entity.File, error) {
	file, err := s.fileRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find file")
	}

	return file, nil
}
