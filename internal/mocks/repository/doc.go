// Package repository holds testify mocks for the domain repository interfaces.
// Each constructor registers AssertExpectations as a test cleanup.
package repository

import (
	"testing"

	"github.com/stretchr/testify/mock"

	domainrepo "pgbee/internal/domain/repository"
)

type expecter interface {
	AssertExpectations(t mock.TestingT) bool
}

func register(t *testing.T, m expecter) {
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// first returns the typed first return value, tolerating a nil interface.
func first[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}

	return zero
}

var (
	_ domainrepo.HostelRepository  = (*MockHostelRepository)(nil)
	_ domainrepo.OwnerRepository   = (*MockOwnerRepository)(nil)
	_ domainrepo.StudentRepository = (*MockStudentRepository)(nil)
	_ domainrepo.ReviewRepository  = (*MockReviewRepository)(nil)
	_ domainrepo.AmenityRepository = (*MockAmenityRepository)(nil)
	_ domainrepo.RentRepository    = (*MockRentRepository)(nil)
	_ domainrepo.EnquiryRepository = (*MockEnquiryRepository)(nil)
	_ domainrepo.FileRepository    = (*MockFileRepository)(nil)
)
