package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestImage(t *testing.T, mimeType string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	var err error
	switch mimeType {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	default:
		t.Fatalf("no encoder for %s", mimeType)
	}
	if err != nil {
		t.Fatalf("failed to encode %s: %v", mimeType, err)
	}
	return buf.Bytes()
}

func captureCode(t *testing.T, err error) Code {
	t.Helper()
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v (%T), want *capture.Error", err, err)
	}
	return cerr.Code
}

func TestIngestNormalizesToPNG(t *testing.T) {
	for _, mimeType := range []string{"image/png", "image/jpeg", "image/gif"} {
		t.Run(mimeType, func(t *testing.T) {
			out, err := Ingest(encodeTestImage(t, mimeType), mimeType)
			if err != nil {
				t.Fatalf("Ingest() error = %v", err)
			}
			if _, err := png.Decode(bytes.NewReader(out)); err != nil {
				t.Errorf("output does not decode as PNG: %v", err)
			}
		})
	}
}

func TestIngestRejectsNonImageDeclaredType(t *testing.T) {
	// A text file renamed to .png still declares text/plain; it must be
	// rejected before any decode work.
	if code := captureCode(t, errOf(Ingest([]byte("hello"), "text/plain"))); code != InvalidFileType {
		t.Errorf("code = %v, want InvalidFileType", code)
	}
	if code := captureCode(t, errOf(Ingest([]byte("%PDF-1.4"), "application/pdf"))); code != InvalidFileType {
		t.Errorf("code = %v, want InvalidFileType", code)
	}
}

func TestIngestRejectsUnsupportedImageType(t *testing.T) {
	err := errOf(Ingest([]byte{0x42, 0x4D}, "image/bmp"))
	if code := captureCode(t, err); code != UnsupportedFormat {
		t.Errorf("code = %v, want UnsupportedFormat", code)
	}
	var cerr *Error
	errors.As(err, &cerr)
	for _, typ := range []string{"image/png", "image/jpeg", "image/gif", "image/webp"} {
		if !bytes.Contains([]byte(cerr.UserMessage()), []byte(typ)) {
			t.Errorf("user message %q does not name %s", cerr.UserMessage(), typ)
		}
	}
}

func TestIngestRejectsMislabeledContent(t *testing.T) {
	// Text bytes with a declared image type: content sniffing catches it.
	err := errOf(Ingest([]byte("just some text pretending to be a png"), "image/png"))
	if code := captureCode(t, err); code != InvalidFileType {
		t.Errorf("code = %v, want InvalidFileType", code)
	}
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "product.jpg")
	if err := os.WriteFile(path, encodeTestImage(t, "image/jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := IngestFile(path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output does not decode as PNG: %v", err)
	}

	// A renamed text file is caught by content sniffing.
	fake := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(fake, []byte("not an image at all, just text"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := IngestFile(fake); err == nil {
		t.Error("IngestFile() accepted a renamed text file")
	}

	if _, err := IngestFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("IngestFile() accepted a missing file")
	}
}

func errOf(_ []byte, err error) error { return err }
