package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	imagedata "vegan-analyze-service/image"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func testRaster(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, mimeType string) []byte {
	t.Helper()
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

func TestNormalizeProducesPNG(t *testing.T) {
	src := testRaster(100, 100)

	for _, mimeType := range []string{"image/png", "image/jpeg", "image/gif"} {
		t.Run(mimeType, func(t *testing.T) {
			out, err := Normalize(encode(t, src, mimeType), mimeType)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !bytes.HasPrefix(out, pngMagic) {
				t.Error("Normalize() output is not PNG")
			}
			decoded, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output does not decode as PNG: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
				t.Errorf("normalized dimensions = %dx%d, want 100x100", b.Dx(), b.Dy())
			}
		})
	}
}

func TestNormalizeScalesDownLargeImages(t *testing.T) {
	src := testRaster(MaxDimension*2, MaxDimension)

	out, err := Normalize(encode(t, src, "image/png"), "image/png")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != MaxDimension || b.Dy() != MaxDimension/2 {
		t.Errorf("scaled dimensions = %dx%d, want %dx%d", b.Dx(), b.Dy(), MaxDimension, MaxDimension/2)
	}
}

func TestDecodeUnsupportedType(t *testing.T) {
	_, err := Decode([]byte{0x42, 0x4D}, "image/bmp")
	var unsupported *imagedata.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Decode() error = %v, want UnsupportedTypeError", err)
	}
}

func TestDecodeCorruptBytes(t *testing.T) {
	if _, err := Decode([]byte("definitely not a png"), "image/png"); err == nil {
		t.Error("Decode() accepted corrupt PNG bytes")
	}
}

func TestReorientSwapsAxes(t *testing.T) {
	src := testRaster(40, 20)

	for _, orientation := range []int{5, 6, 7, 8} {
		out := Reorient(src, orientation)
		if b := out.Bounds(); b.Dx() != 20 || b.Dy() != 40 {
			t.Errorf("orientation %d: dimensions = %dx%d, want 20x40", orientation, b.Dx(), b.Dy())
		}
	}
	for _, orientation := range []int{1, 2, 3, 4} {
		out := Reorient(src, orientation)
		if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
			t.Errorf("orientation %d: dimensions = %dx%d, want 40x20", orientation, b.Dx(), b.Dy())
		}
	}
}

func TestReorientRotate180(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{B: 255, A: 255})

	out := Reorient(src, 3)
	r, _, _, _ := out.At(1, 0).RGBA()
	if r == 0 {
		t.Error("rotate 180 did not move the red pixel to the right edge")
	}
}
