package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	mockRepo "pgbee/internal/mocks/repository"
	"pgbee/internal/usecase"
)

func TestOwnerService_Create(t *testing.T) {
	ownerRepo := mockRepo.NewMockOwnerRepository(t)
	svc := NewOwnerService(ownerRepo, discardLogger())

	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, &usecase.OwnerInput{Name: "  "})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	ownerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Owner")).Return(nil).Once()
	owner, err := svc.Create(ctx, userID, &usecase.OwnerInput{Name: "Ravi", HostelName: "Green Nest", Bedrooms: 4})
	require.NoError(t, err)
	assert.Equal(t, userID, owner.UserID)
	assert.Equal(t, 4, owner.Bedrooms)
}

func TestOwnerService_Update_Patch(t *testing.T) {
	ownerRepo := mockRepo.NewMockOwnerRepository(t)
	svc := NewOwnerService(ownerRepo, discardLogger())

	ctx := context.Background()
	id := uuid.New()

	ownerRepo.On("FindByID", ctx, id).Return(&entity.Owner{ID: id, Name: "Ravi", Phone: "1"}, nil).Once()
	ownerRepo.On("Update", ctx, mock.AnythingOfType("*entity.Owner")).Return(nil).Once()

	owner, err := svc.Update(ctx, id, &usecase.OwnerPatch{Phone: ptr("2"), Curfew: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", owner.Name)
	assert.Equal(t, "2", owner.Phone)
	assert.True(t, owner.Curfew)
}

func TestOwnerService_Delete_NotFound(t *testing.T) {
	ownerRepo := mockRepo.NewMockOwnerRepository(t)
	svc := NewOwnerService(ownerRepo, discardLogger())

	ctx := context.Background()
	id := uuid.New()
	ownerRepo.On("Delete", ctx, id).Return(domainerrors.ErrOwnerNotFound).Once()

	assert.ErrorIs(t, svc.Delete(ctx, id), domainerrors.ErrOwnerNotFound)
}

func TestStudentService_CreateAndUpdate(t *testing.T) {
	studentRepo := mockRepo.NewMockStudentRepository(t)
	svc := NewStudentService(studentRepo, discardLogger())

	ctx := context.Background()
	userID := uuid.New()
	dob := time.Date(2003, 5, 17, 0, 0, 0, 0, time.UTC)

	studentRepo.On("Create", ctx, mock.AnythingOfType("*entity.Student")).Return(nil).Once()
	student, err := svc.Create(ctx, userID, &usecase.StudentInput{UserName: "asha", DOB: dob, City: "Kochi"})
	require.NoError(t, err)
	assert.Equal(t, dob, student.DOB)

	studentRepo.On("FindByID", ctx, student.ID).Return(student, nil).Once()
	studentRepo.On("Update", ctx, student).Return(nil).Once()

	updated, err := svc.Update(ctx, student.ID, &usecase.StudentPatch{City: ptr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "asha", updated.UserName)
}

func TestStudentService_Create_Duplicate(t *testing.T) {
	studentRepo := mockRepo.NewMockStudentRepository(t)
	svc := NewStudentService(studentRepo, discardLogger())

	ctx := context.Background()
	studentRepo.On("Create", ctx, mock.Anything).Return(domainerrors.NewDuplicateError("user_id")).Once()

	_, err := svc.Create(ctx, uuid.New(), &usecase.StudentInput{UserName: "asha"})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateValue)
}
