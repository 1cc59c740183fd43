package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	mockUsecase "pgbee/internal/mocks/usecase"
	"pgbee/internal/usecase"
)

func TestReviewHandler_Create(t *testing.T) {
	user := testUser()
	hostelID := uuid.New()

	uc := mockUsecase.NewMockReviewUsecase(t)
	h := NewReviewHandler(ReviewHandlerParams{ReviewUC: uc, Logger: discardLogger()})
	e := newTestEcho(user)
	e.POST("/review", h.Create)

	t.Run("created", func(t *testing.T) {
		uc.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(in *usecase.ReviewInput) bool {
			return in.HostelID == hostelID && in.Rating == 4 && in.Date.IsZero()
		})).Return(&entity.Review{ID: uuid.New(), UserID: user.ID, HostelID: hostelID, Rating: 4}, nil).Once()

		rec, env := serve(t, e, http.MethodPost, "/review", `{"hostelId":"`+hostelID.String()+`","rating":4,"text":"clean rooms"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Review created successfully", env.Message)
	})

	t.Run("rating out of range", func(t *testing.T) {
		rec, env := serve(t, e, http.MethodPost, "/review", `{"hostelId":"`+hostelID.String()+`","rating":6}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid input data. rating must be less than or equal to 5", env.Message)
	})

	t.Run("unknown hostel", func(t *testing.T) {
		other := uuid.New()
		uc.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(in *usecase.ReviewInput) bool {
			return in.HostelID == other
		})).Return(nil, domainerrors.ErrHostelNotFound).Once()

		rec, env := serve(t, e, http.MethodPost, "/review", `{"hostelId":"`+other.String()+`","rating":3}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Hostel not found", env.Message)
	})
}

func TestReviewHandler_DeleteByNonAuthor(t *testing.T) {
	user := testUser()
	id := uuid.New()

	uc := mockUsecase.NewMockReviewUsecase(t)
	h := NewReviewHandler(ReviewHandlerParams{ReviewUC: uc, Logger: discardLogger()})
	e := newTestEcho(user)
	e.DELETE("/review/:id", h.Delete)

	uc.On("Delete", mock.Anything, user.ID, id).Return(domainerrors.ErrReviewForbidden).Once()

	rec, env := serve(t, e, http.MethodDelete, "/review/"+id.String(), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to modify this review", env.Message)
}
