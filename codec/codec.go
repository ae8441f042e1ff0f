// Package codec is the platform image-codec capability: it decodes the
// supported input formats into an in-memory raster and encodes rasters as
// PNG, the canonical format every downstream component works with.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/apex/log"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	imagedata "vegan-analyze-service/image"
)

// MaxDimension caps the longer side of a normalized image, so relay
// payloads stay small enough for the vision model without losing label
// legibility.
const MaxDimension = 1280

// Decode decodes raw bytes of the declared MIME type into a raster.
// The declared type selects the decoder; bytes that do not parse as that
// type fail with a decode error.
func Decode(data []byte, declaredType string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch declaredType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/gif":
		img, err = gif.Decode(bytes.NewReader(data))
	case "image/webp":
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, &imagedata.UnsupportedTypeError{MIME: declaredType}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", declaredType, err)
	}
	return img, nil
}

// EncodePNG encodes a raster as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Normalize converts raw image bytes of the declared MIME type into a
// canonical PNG at the image's natural dimensions. JPEG input is rotated
// upright per its EXIF orientation, and images larger than MaxDimension on
// either side are scaled down preserving aspect ratio.
func Normalize(data []byte, declaredType string) ([]byte, error) {
	img, err := Decode(data, declaredType)
	if err != nil {
		return nil, err
	}

	if declaredType == "image/jpeg" {
		if o := Orientation(data); o != 1 {
			img = Reorient(img, o)
			log.Debugf("applied EXIF orientation %d", o)
		}
	}

	img = scaleDown(img, MaxDimension)
	return EncodePNG(img)
}

// Orientation extracts the EXIF orientation tag from JPEG bytes, defaulting
// to 1 (upright) when there is no usable EXIF data.
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// Reorient rewrites a raster so that it displays upright for the given EXIF
// orientation value (1-8).
func Reorient(img image.Image, orientation int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Orientations 5-8 swap the axes.
	ow, oh := w, h
	if orientation >= 5 {
		ow, oh = h, w
	}

	if orientation < 2 || orientation > 8 {
		return img
	}

	// dest maps a source pixel to its upright destination.
	var dest func(x, y int) (int, int)
	switch orientation {
	case 2: // mirrored
		dest = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // rotated 180
		dest = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // flipped vertically
		dest = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // transposed
		dest = func(x, y int) (int, int) { return y, x }
	case 6: // rotated 90 CW
		dest = func(x, y int) (int, int) { return h - 1 - y, x }
	case 7: // transversed
		dest = func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }
	case 8: // rotated 90 CCW
		dest = func(x, y int) (int, int) { return y, w - 1 - x }
	}

	out := image.NewRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := dest(x, y)
			out.Set(dx, dy, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

// scaleDown shrinks img so neither side exceeds maxDim, preserving aspect
// ratio. Images already within the limit are returned unchanged.
func scaleDown(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(w)
	if s := float64(maxDim) / float64(h); s < scale {
		scale = s
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, bounds, draw.Over, nil)
	return out
}
