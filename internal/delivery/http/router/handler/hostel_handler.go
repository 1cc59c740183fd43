package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/response"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

// HostelHandlerParams holds dependencies for HostelHandler, injected by Fx.
type HostelHandlerParams struct {
	fx.In

	HostelUC usecase.HostelUsecase
	Logger   *slog.Logger
}

type HostelHandler struct {
	hostelUC usecase.HostelUsecase
	logger   *slog.Logger
}

func NewHostelHandler(params HostelHandlerParams) *HostelHandler {
	return &HostelHandler{
		hostelUC: params.HostelUC,
		logger:   params.Logger,
	}
}

// CreateHostelRequest represents the request body for creating a hostel
type CreateHostelRequest struct {
	HostelName  string   `json:"hostelName" validate:"required"`
	Phone       string   `json:"phone" validate:"required,min=10"`
	Address     string   `json:"address" validate:"required"`
	Curfew      bool     `json:"curfew"`
	Description string   `json:"description"`
	Distance    float64  `json:"distance" validate:"gte=0"`
	Location    string   `json:"location" validate:"required"`
	Rent        float64  `json:"rent" validate:"gte=0"`
	Gender      string   `json:"gender" validate:"required"`
	Files       string   `json:"files"`
	Bedrooms    int      `json:"bedrooms" validate:"min=1"`
	Bathrooms   int      `json:"bathrooms" validate:"min=1"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// UpdateHostelRequest represents a partial update; absent fields are kept.
type UpdateHostelRequest struct {
	HostelName  *string  `json:"hostelName" validate:"omitempty,min=1"`
	Phone       *string  `json:"phone" validate:"omitempty,min=10"`
	Address     *string  `json:"address" validate:"omitempty,min=1"`
	Curfew      *bool    `json:"curfew"`
	Description *string  `json:"description"`
	Distance    *float64 `json:"distance" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" validate:"omitempty,min=1"`
	Rent        *float64 `json:"rent" validate:"omitempty,gte=0"`
	Gender      *string  `json:"gender" validate:"omitempty,min=1"`
	Files       *string  `json:"files"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitempty,min=1"`
	Bathrooms   *int     `json:"bathrooms" validate:"omitempty,min=1"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

func (h *HostelHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateHostelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hostel, err := h.hostelUC.Create(c.Request().Context(), user.ID, &usecase.HostelInput{
		HostelName:  req.HostelName,
		Phone:       req.Phone,
		Address:     req.Address,
		Curfew:      req.Curfew,
		Description: req.Description,
		Distance:    req.Distance,
		Location:    req.Location,
		Rent:        req.Rent,
		Gender:      req.Gender,
		Files:       req.Files,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Hostel created successfully",
		echo.Map{"hostel": toHostelResponse(hostel)})
}

func (h *HostelHandler) List(c echo.Context) error {
	hostels, err := h.hostelUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Hostels fetched successfully",
		echo.Map{"hostels": mapSlice(hostels, toHostelResponse)})
}

// ListMine returns the caller's listings.
func (h *HostelHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	hostels, err := h.hostelUC.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Hostels fetched successfully",
		echo.Map{"hostels": mapSlice(hostels, toHostelResponse)})
}

func (h *HostelHandler) Get(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	hostel, err := h.hostelUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Hostel fetched successfully",
		echo.Map{"hostel": toHostelResponse(hostel)})
}

func (h *HostelHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateHostelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hostel, err := h.hostelUC.Update(c.Request().Context(), user.ID, id, &usecase.HostelPatch{
		HostelName:  req.HostelName,
		Phone:       req.Phone,
		Address:     req.Address,
		Curfew:      req.Curfew,
		Description: req.Description,
		Distance:    req.Distance,
		Location:    req.Location,
		Rent:        req.Rent,
		Gender:      req.Gender,
		Files:       req.Files,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Hostel updated successfully",
		echo.Map{"hostel": toHostelResponse(hostel)})
}

func (h *HostelHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.hostelUC.Delete(c.Request().Context(), user.ID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Hostel deleted successfully", nil)
}

// Nearby lists hostels around ?lat=&lng=, optionally bounded by ?radiusKm=.
func (h *HostelHandler) Nearby(c echo.Context) error {
	var query usecase.NearbyQuery
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &query.Latitude).
		MustFloat64("lng", &query.Longitude).
		Float64("radiusKm", &query.RadiusKm).
		BindError()
	if err != nil {
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) {
			if len(bindErr.Values) == 0 || bindErr.Values[0] == "" {
				return domainerrors.NewValidationError(bindErr.Field + " is required")
			}

			return domainerrors.NewValidationError(bindErr.Field + " must be a number")
		}

		return domainerrors.NewValidationError("lat and lng are required")
	}

	nearby, err := h.hostelUC.Nearby(c.Request().Context(), &query)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]*NearbyHostelResponse, 0, len(nearby))
	for _, n := range nearby {
		out = append(out, &NearbyHostelResponse{
			HostelResponse: toHostelResponse(n.Hostel),
			DistanceKm:     n.DistanceKm,
		})
	}

	return response.Success(c, http.StatusOK, "Hostels fetched successfully", echo.Map{"hostels": out})
}

// QRCode streams the PNG share code of a hostel.
func (h *HostelHandler) QRCode(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.hostelUC.QRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
