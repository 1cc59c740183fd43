package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/response"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const uploadFormField = "file"

// FileHandlerParams holds dependencies for FileHandler, injected by Fx.
type FileHandlerParams struct {
	fx.In

	FileUC usecase.FileUsecase
	Logger *slog.Logger
}

type FileHandler struct {
	fileUC usecase.FileUsecase
	logger *slog.Logger
}

func NewFileHandler(params FileHandlerParams) *FileHandler {
	return &FileHandler{
		fileUC: params.FileUC,
		logger: params.Logger,
	}
}

// Upload stores the multipart "file" field. An optional "hostelId" form
// value attaches the file to a hostel.
func (h *FileHandler) Upload(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile(uploadFormField)
	if err != nil {
		return domainerrors.NewValidationError("file is required")
	}

	var hostelID *uuid.UUID
	if raw := c.FormValue("hostelId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return domainerrors.ErrInvalidID.WithDetails("hostelId")
		}
		hostelID = &id
	}

	src, err := header.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer src.Close()

	file, err := h.fileUC.Upload(c.Request().Context(), &usecase.UploadInput{
		UserID:      user.ID,
		HostelID:    hostelID,
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        src,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "File uploaded successfully",
		echo.Map{"file": toFileResponse(file)})
}

// ListMine returns the metadata of the caller's uploads.
func (h *FileHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	files, err := h.fileUC.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Files fetched successfully",
		echo.Map{"files": mapSlice(files, toFileResponse)})
}

func (h *FileHandler) Get(c echo.Context) error {
	file, err := h.fileUC.GetByKey(c.Request().Context(), c.Param("key"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "File fetched successfully",
		echo.Map{"file": toFileResponse(file)})
}
