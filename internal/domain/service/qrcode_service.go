package service

import "github.com/google/uuid"

// QRCodeService renders and reads the share codes printed on hostel listings.
type QRCodeService interface {
	GenerateHostelQR(hostelID uuid.UUID) ([]byte, error)

	// ParseHostelQR extracts the hostel ID from the decoded QR text.
	ParseHostelQR(content string) (uuid.UUID, error)
}
