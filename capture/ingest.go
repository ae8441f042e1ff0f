package capture

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"vegan-analyze-service/codec"
	imagedata "vegan-analyze-service/image"
)

// Ingest validates an uploaded file and normalizes it to a canonical PNG.
// The declared type is checked before any decode work: non-image types are
// rejected as InvalidFileType, image types outside the supported set as
// UnsupportedFormat. The bytes are then sniffed so a renamed file cannot
// smuggle a non-image payload past the declared type.
func Ingest(data []byte, declaredType string) ([]byte, error) {
	if !strings.HasPrefix(declaredType, "image/") {
		return nil, NewError(InvalidFileType, nil)
	}
	if !imagedata.IsSupported(declaredType) {
		return nil, NewError(UnsupportedFormat, nil)
	}

	sniffed := mimetype.Detect(data)
	if !strings.HasPrefix(sniffed.String(), "image/") {
		return nil, NewError(InvalidFileType, nil)
	}

	out, err := codec.Normalize(data, declaredType)
	if err != nil {
		return nil, NewError(UnsupportedFormat, err)
	}
	return out, nil
}

// IngestFile reads a file from disk and ingests it. The declared type comes
// from the file extension, falling back to content sniffing for files with
// no usable extension.
func IngestFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(InvalidFileType, err)
	}

	declared := mime.TypeByExtension(filepath.Ext(path))
	if declared == "" {
		declared = mimetype.Detect(data).String()
	}
	// Strip any parameters, e.g. "; charset=utf-8".
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}

	return Ingest(data, declared)
}
