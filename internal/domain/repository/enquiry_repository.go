package repository

import (
	"context"

	"pgbee/internal/domain/entity"

	"github.com/google/uuid"
)

// EnquiryRepository persists student enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *entity.Enquiry) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error)
	FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Enquiry, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Enquiry, error)
	Update(ctx context.Context, enquiry *entity.Enquiry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
