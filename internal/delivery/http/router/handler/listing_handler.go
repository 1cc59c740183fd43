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

// ListingHandlerParams holds dependencies for ListingHandler, injected by Fx.
type ListingHandlerParams struct {
	fx.In

	AmenityUC usecase.AmenityUsecase
	RentUC    usecase.RentUsecase
	Logger    *slog.Logger
}

// ListingHandler serves the amenities and rent tiers of a hostel.
type ListingHandler struct {
	amenityUC usecase.AmenityUsecase
	rentUC    usecase.RentUsecase
	logger    *slog.Logger
}

func NewListingHandler(params ListingHandlerParams) *ListingHandler {
	return &ListingHandler{
		amenityUC: params.AmenityUC,
		rentUC:    params.RentUC,
		logger:    params.Logger,
	}
}

type AmenitiesRequest struct {
	Wifi          bool `json:"wifi"`
	AC            bool `json:"ac"`
	Kitchen       bool `json:"kitchen"`
	Parking       bool `json:"parking"`
	Laundry       bool `json:"laundry"`
	TV            bool `json:"tv"`
	FirstAid      bool `json:"firstAid"`
	Workspace     bool `json:"workspace"`
	Security      bool `json:"security"`
	CurrentBill   bool `json:"currentBill"`
	WaterBill     bool `json:"waterBill"`
	Food          bool `json:"food"`
	Furniture     bool `json:"furniture"`
	Bed           bool `json:"bed"`
	Water         bool `json:"water"`
	StudentsCount int  `json:"studentsCount" validate:"gte=0"`
}

// CreateAmenitiesRequest names the hostel in the body.
type CreateAmenitiesRequest struct {
	HostelID uuid.UUID `json:"hostelId" validate:"required"`
	AmenitiesRequest
}

type RentRequest struct {
	SharingType string `json:"sharingType" validate:"required"`
	Rent        int    `json:"rent" validate:"gte=0"`
}

type CreateRentRequest struct {
	HostelID uuid.UUID `json:"hostelId" validate:"required"`
	RentRequest
}

func (r *AmenitiesRequest) toInput() *usecase.AmenitiesInput {
	return &usecase.AmenitiesInput{
		Wifi:          r.Wifi,
		AC:            r.AC,
		Kitchen:       r.Kitchen,
		Parking:       r.Parking,
		Laundry:       r.Laundry,
		TV:            r.TV,
		FirstAid:      r.FirstAid,
		Workspace:     r.Workspace,
		Security:      r.Security,
		CurrentBill:   r.CurrentBill,
		WaterBill:     r.WaterBill,
		Food:          r.Food,
		Furniture:     r.Furniture,
		Bed:           r.Bed,
		Water:         r.Water,
		StudentsCount: r.StudentsCount,
	}
}

func (h *ListingHandler) CreateAmenities(c echo.Context) error {
	var req CreateAmenitiesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	amenities, err := h.amenityUC.Create(c.Request().Context(), req.HostelID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Amenities created successfully",
		echo.Map{"amenities": toAmenitiesResponse(amenities)})
}

func (h *ListingHandler) GetAmenities(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	amenities, err := h.amenityUC.Get(c.Request().Context(), hostelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Amenities fetched successfully",
		echo.Map{"amenities": toAmenitiesResponse(amenities)})
}

func (h *ListingHandler) UpdateAmenities(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	var req AmenitiesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	amenities, err := h.amenityUC.Update(c.Request().Context(), hostelID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Amenities updated successfully",
		echo.Map{"amenities": toAmenitiesResponse(amenities)})
}

func (h *ListingHandler) DeleteAmenities(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	if err := h.amenityUC.Delete(c.Request().Context(), hostelID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Amenities deleted successfully", nil)
}

func (h *ListingHandler) CreateRent(c echo.Context) error {
	var req CreateRentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rent, err := h.rentUC.Create(c.Request().Context(), req.HostelID, &usecase.RentInput{
		SharingType: req.SharingType,
		Rent:        req.Rent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Rent added successfully",
		echo.Map{"rent": toRentResponse(rent)})
}

func (h *ListingHandler) ListRent(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	rents, err := h.rentUC.List(c.Request().Context(), hostelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Rent retrieved successfully",
		echo.Map{"rent": mapSlice(rents, toRentResponse)})
}

func (h *ListingHandler) UpdateRent(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	var req RentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rent, err := h.rentUC.Update(c.Request().Context(), hostelID, &usecase.RentInput{
		SharingType: req.SharingType,
		Rent:        req.Rent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Rent updated successfully",
		echo.Map{"rent": toRentResponse(rent)})
}

// DeleteRent removes one tier when ?sharingType= is given, otherwise every tier.
func (h *ListingHandler) DeleteRent(c echo.Context) error {
	hostelID, err := paramUUID(c, "hostelId")
	if err != nil {
		return err
	}

	if err := h.rentUC.Delete(c.Request().Context(), hostelID, c.QueryParam("sharingType")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Rent deleted successfully", nil)
}
