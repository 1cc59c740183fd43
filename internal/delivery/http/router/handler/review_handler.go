package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/response"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

type CreateReviewRequest struct {
	HostelID uuid.UUID  `json:"hostelId" validate:"required"`
	Rating   int        `json:"rating" validate:"required,gte=1,lte=5"`
	Text     string     `json:"text"`
	Image    string     `json:"image"`
	Date     *time.Time `json:"date"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Text   *string `json:"text"`
	Image  *string `json:"image"`
}

func (h *ReviewHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.ReviewInput{
		HostelID: req.HostelID,
		Rating:   req.Rating,
		Text:     req.Text,
		Image:    req.Image,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	review, err := h.reviewUC.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Review created successfully",
		echo.Map{"review": toReviewResponse(review)})
}

func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	review, err := h.reviewUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Review fetched successfully",
		echo.Map{"review": toReviewResponse(review)})
}

// ListMine returns the reviews written by the caller.
func (h *ReviewHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Reviews fetched successfully",
		echo.Map{"reviews": mapSlice(reviews, toReviewResponse)})
}

func (h *ReviewHandler) ListByHostel(c echo.Context) error {
	hostelID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListByHostel(c.Request().Context(), hostelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Reviews fetched successfully",
		echo.Map{"reviews": mapSlice(reviews, toReviewResponse)})
}

func (h *ReviewHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.Update(c.Request().Context(), user.ID, id, &usecase.ReviewPatch{
		Rating: req.Rating,
		Text:   req.Text,
		Image:  req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Review updated successfully",
		echo.Map{"review": toReviewResponse(review)})
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.reviewUC.Delete(c.Request().Context(), user.ID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Review deleted successfully", nil)
}
