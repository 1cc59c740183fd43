package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"pgbee/internal/delivery/http/response"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const dobLayout = time.DateOnly

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	OwnerUC   usecase.OwnerUsecase
	StudentUC usecase.StudentUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves owner and student profiles.
type ProfileHandler struct {
	ownerUC   usecase.OwnerUsecase
	studentUC usecase.StudentUsecase
	logger    *slog.Logger
}

func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		ownerUC:   params.OwnerUC,
		studentUC: params.StudentUC,
		logger:    params.Logger,
	}
}

type CreateOwnerRequest struct {
	Name        string  `json:"name" validate:"required"`
	HostelName  string  `json:"hostelName" validate:"required"`
	Phone       string  `json:"phone" validate:"required,min=10"`
	Address     string  `json:"address" validate:"required"`
	Curfew      bool    `json:"curfew"`
	Description string  `json:"description"`
	Distance    float64 `json:"distance" validate:"gte=0"`
	Location    string  `json:"location" validate:"required"`
	Rent        float64 `json:"rent" validate:"gte=0"`
	Files       string  `json:"files"`
	Bedrooms    int     `json:"bedrooms" validate:"min=1"`
	Bathrooms   int     `json:"bathrooms" validate:"min=1"`
}

type UpdateOwnerRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	HostelName  *string  `json:"hostelName" validate:"omitempty,min=1"`
	Phone       *string  `json:"phone" validate:"omitempty,min=10"`
	Address     *string  `json:"address" validate:"omitempty,min=1"`
	Curfew      *bool    `json:"curfew"`
	Description *string  `json:"description"`
	Distance    *float64 `json:"distance" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" validate:"omitempty,min=1"`
	Rent        *float64 `json:"rent" validate:"omitempty,gte=0"`
	Files       *string  `json:"files"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitempty,min=1"`
	Bathrooms   *int     `json:"bathrooms" validate:"omitempty,min=1"`
}

// CreateStudentRequest carries dob as YYYY-MM-DD.
type CreateStudentRequest struct {
	UserName         string `json:"userName" validate:"required"`
	DOB              string `json:"dob" validate:"required,datetime=2006-01-02"`
	Country          string `json:"country"`
	PermanentAddress string `json:"permanentAddress"`
	PresentAddress   string `json:"presentAddress"`
	City             string `json:"city"`
	PostalCode       string `json:"postalCode"`
}

type UpdateStudentRequest struct {
	UserName         *string `json:"userName" validate:"omitempty,min=1"`
	DOB              *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Country          *string `json:"country"`
	PermanentAddress *string `json:"permanentAddress"`
	PresentAddress   *string `json:"presentAddress"`
	City             *string `json:"city"`
	PostalCode       *string `json:"postalCode"`
}

func (h *ProfileHandler) CreateOwner(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	owner, err := h.ownerUC.Create(c.Request().Context(), user.ID, &usecase.OwnerInput{
		Name:        req.Name,
		HostelName:  req.HostelName,
		Phone:       req.Phone,
		Address:     req.Address,
		Curfew:      req.Curfew,
		Description: req.Description,
		Distance:    req.Distance,
		Location:    req.Location,
		Rent:        req.Rent,
		Files:       req.Files,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Owner created successfully",
		echo.Map{"newOwner": toOwnerResponse(owner)})
}

func (h *ProfileHandler) ListOwners(c echo.Context) error {
	owners, err := h.ownerUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Owners fetched successfully",
		echo.Map{"owners": mapSlice(owners, toOwnerResponse)})
}

func (h *ProfileHandler) GetOwner(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	owner, err := h.ownerUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Owner fetched successfully",
		echo.Map{"owner": toOwnerResponse(owner)})
}

func (h *ProfileHandler) UpdateOwner(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	owner, err := h.ownerUC.Update(c.Request().Context(), id, &usecase.OwnerPatch{
		Name:        req.Name,
		HostelName:  req.HostelName,
		Phone:       req.Phone,
		Address:     req.Address,
		Curfew:      req.Curfew,
		Description: req.Description,
		Distance:    req.Distance,
		Location:    req.Location,
		Rent:        req.Rent,
		Files:       req.Files,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Owner updated successfully",
		echo.Map{"owner": toOwnerResponse(owner)})
}

func (h *ProfileHandler) DeleteOwner(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.ownerUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Owner deleted successfully", nil)
}

func (h *ProfileHandler) CreateStudent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return err
	}

	student, err := h.studentUC.Create(c.Request().Context(), user.ID, &usecase.StudentInput{
		UserName:         req.UserName,
		DOB:              dob,
		Country:          req.Country,
		PermanentAddress: req.PermanentAddress,
		PresentAddress:   req.PresentAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, "Student created successfully",
		echo.Map{"newStudent": toStudentResponse(student)})
}

// GetMyStudent returns the caller's student profile.
func (h *ProfileHandler) GetMyStudent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	student, err := h.studentUC.GetByUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Student fetched successfully",
		echo.Map{"student": toStudentResponse(student)})
}

func (h *ProfileHandler) GetStudent(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	student, err := h.studentUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Student fetched successfully",
		echo.Map{"student": toStudentResponse(student)})
}

func (h *ProfileHandler) UpdateStudent(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := &usecase.StudentPatch{
		UserName:         req.UserName,
		Country:          req.Country,
		PermanentAddress: req.PermanentAddress,
		PresentAddress:   req.PresentAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
	}
	if req.DOB != nil {
		dob, err := parseDOB(*req.DOB)
		if err != nil {
			return err
		}
		patch.DOB = &dob
	}

	student, err := h.studentUC.Update(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Student updated successfully",
		echo.Map{"student": toStudentResponse(student)})
}

func (h *ProfileHandler) DeleteStudent(c echo.Context) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.studentUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, "Student deleted successfully", nil)
}

func parseDOB(s string) (time.Time, error) {
	dob, err := time.Parse(dobLayout, s)
	if err != nil {
		return time.Time{}, domainerrors.NewValidationError("dob must be a date in YYYY-MM-DD format")
	}

	return dob, nil
}
