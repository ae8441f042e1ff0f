package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// SupportedTypes lists the image MIME types the service accepts, in the
// order they appear in user-facing error messages.
var SupportedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ErrNotDataURI is returned when a payload is not a base64 data URI.
var ErrNotDataURI = errors.New("payload is not a base64 image data URI")

// UnsupportedTypeError reports a declared MIME type outside the supported set.
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported image type %q, supported types are: %s", e.MIME, strings.Join(SupportedTypes, ", "))
}

// Encoded is a single still image: raw bytes tagged with a MIME type.
type Encoded struct {
	MIME string
	Data []byte
}

// IsSupported reports whether mimeType is one of the supported image types.
func IsSupported(mimeType string) bool {
	for _, t := range SupportedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// ParseDataURI parses a "data:<mime>;base64,<payload>" string into an
// Encoded image. The declared MIME type is validated against the supported
// set before the payload is decoded, so oversized or corrupt payloads of
// unsupported types are rejected cheaply.
func ParseDataURI(uri string) (Encoded, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Encoded{}, ErrNotDataURI
	}
	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return Encoded{}, ErrNotDataURI
	}
	if !IsSupported(mimeType) {
		return Encoded{}, &UnsupportedTypeError{MIME: mimeType}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Encoded{}, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return Encoded{MIME: mimeType, Data: data}, nil
}

// DataURI formats the image as a base64 data URI.
func (e Encoded) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", e.MIME, base64.StdEncoding.EncodeToString(e.Data))
}
