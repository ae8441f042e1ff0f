package image

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestIsSupported(t *testing.T) {
	testCases := []struct {
		mimeType string
		want     bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"image/gif", true},
		{"image/webp", true},
		{"image/bmp", false},
		{"image/tiff", false},
		{"text/plain", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.mimeType, func(t *testing.T) {
			if got := IsSupported(tc.mimeType); got != tc.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tc.mimeType, got, tc.want)
			}
		})
	}
}

func TestParseDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	enc, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI() error = %v", err)
	}
	if enc.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", enc.MIME)
	}
	if string(enc.Data) != string(payload) {
		t.Errorf("Data = %v, want %v", enc.Data, payload)
	}
}

func TestParseDataURIUnsupportedType(t *testing.T) {
	_, err := ParseDataURI("data:image/bmp;base64,AAAA")
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("ParseDataURI() error = %v, want UnsupportedTypeError", err)
	}
	if unsupported.MIME != "image/bmp" {
		t.Errorf("MIME = %q, want image/bmp", unsupported.MIME)
	}
	for _, typ := range SupportedTypes {
		if !strings.Contains(err.Error(), typ) {
			t.Errorf("error message %q does not name %s", err.Error(), typ)
		}
	}
}

func TestParseDataURINotADataURI(t *testing.T) {
	for _, uri := range []string{"", "not a uri", "data:image/png,rawpayload", "http://example.com/a.png"} {
		if _, err := ParseDataURI(uri); !errors.Is(err, ErrNotDataURI) {
			t.Errorf("ParseDataURI(%q) error = %v, want ErrNotDataURI", uri, err)
		}
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	in := Encoded{MIME: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF, 0xE0}}
	out, err := ParseDataURI(in.DataURI())
	if err != nil {
		t.Fatalf("ParseDataURI() error = %v", err)
	}
	if out.MIME != in.MIME || string(out.Data) != string(in.Data) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
