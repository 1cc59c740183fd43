package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// SHA256Hex returns the hex-encoded SHA-256 of s. Refresh tokens are stored
// in this form.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))

	return hex.EncodeToString(sum[:])
}

// ChecksumReader hashes everything read through it.
type ChecksumReader struct {
	r    io.Reader
	h    hash.Hash
	read int64
}

// NewChecksumReader wraps r so the SHA-256 and byte count of the stream can
// be read back once it is drained.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	h := sha256.New()

	return &ChecksumReader{r: io.TeeReader(r, h), h: h}
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)

	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (c *ChecksumReader) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}

// BytesRead returns how many bytes passed through.
func (c *ChecksumReader) BytesRead() int64 {
	return c.read
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}
