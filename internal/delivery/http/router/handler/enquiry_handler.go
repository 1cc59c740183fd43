package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/response"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

// EnquiryHandlerParams holds dependencies for EnquiryHandler, injected by Fx.
type EnquiryHandlerParams struct {
	fx.In

	EnquiryUC usecase.EnquiryUsecase
	Logger    *slog.Logger
}

type EnquiryHandler struct {
	enquiryUC usecase.EnquiryUsecase
	logger    *slog.Logger
}

func NewEnquiryHandler(params EnquiryHandlerParams) *EnquiryHandler {
	return &EnquiryHandler{
		enquiryUC: params.EnquiryUC,
		logger:    params.Logger,
	}
}

type CreateEnquiryRequest struct {
	HostelID uuid.UUID `json:"hostelId" validate:"required"`
}

type UpdateEnquiryRequest struct {
	Enquiry *bool `json:"enquiry" validate:"required"`
}

func (h *EnquiryHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateEnquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	enquiry, err := h.enquiryUC.Create(c.Request().Context(), user.ID, req.HostelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Enquiry created successfully",
		echo.Map{"newEnquiry": toEnquiryResponse(enquiry)})
}

// ListMine returns the enquiries of the caller's student profile.
func (h *EnquiryHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	enquiries, err := h.enquiryUC.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "User enquiries retrieved successfully",
		echo.Map{"enquiries": mapSlice(enquiries, toEnquiryResponse)})
}

func (h *EnquiryHandler) ListByHostel(c echo.Context) error {
	hostelID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	enquiries, err := h.enquiryUC.ListByHostel(c.Request().Context(), hostelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Enquiries retrieved successfully",
		echo.Map{"enquiries": mapSlice(enquiries, toEnquiryResponse)})
}

func (h *EnquiryHandler) ListByStudent(c echo.Context) error {
	studentID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	enquiries, err := h.enquiryUC.ListByStudent(c.Request().Context(), studentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Enquiries retrieved successfully",
		echo.Map{"enquiries": mapSlice(enquiries, toEnquiryResponse)})
}

func (h *EnquiryHandler) Update(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateEnquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	enquiry, err := h.enquiryUC.Update(c.Request().Context(), id, *req.Enquiry)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Enquiry updated successfully",
		echo.Map{"enquiry": toEnquiryResponse(enquiry)})
}

func (h *EnquiryHandler) Delete(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.enquiryUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Enquiry deleted successfully", nil)
}
