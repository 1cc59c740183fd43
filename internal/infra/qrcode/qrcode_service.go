package qrcode

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"pgbee/config"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

const (
	defaultSize    = 256
	defaultBaseURL = "https://app.pgbee.in"
	hostelPath     = "/hostel/"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level, baseURL := defaultSize, "M", defaultBaseURL
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			level = cfg.QRCode.ErrorCorrectionLevel
		}
		if cfg.QRCode.BaseURL != "" {
			baseURL = cfg.QRCode.BaseURL
		}
	}

	return newQRCodeService(size, level, baseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// hostelURL is the link encoded in a hostel's share code.
func (s *qrcodeService) hostelURL(hostelID uuid.UUID) string {
	return s.baseURL + hostelPath + hostelID.String()
}

// GenerateHostelQR renders the hostel's share link as a PNG.
func (s *qrcodeService) GenerateHostelQR(hostelID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.hostelURL(hostelID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseHostelQR accepts any link whose path ends in /hostel/<uuid>.
func (s *qrcodeService) ParseHostelQR(content string) (uuid.UUID, error) {
	u, err := url.Parse(strings.TrimSpace(content))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code content")
	}

	idx := strings.LastIndex(u.Path, hostelPath)
	if idx < 0 {
		return uuid.Nil, errors.Errorf("QR code does not point at a hostel: %s", content)
	}

	hostelID, err := uuid.Parse(strings.Trim(u.Path[idx+len(hostelPath):], "/"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse hostel ID")
	}

	return hostelID, nil
}
