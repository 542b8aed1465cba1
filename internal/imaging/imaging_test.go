package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// gradientSource builds a wide test image whose pixel colors encode their
// x position, so a decoded crop reveals which region was kept.
func gradientSource(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func decodeCrop(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("crop output is not PNG: %v", err)
	}
	return img
}

func TestCropProducesSquarePNG(t *testing.T) {
	src := gradientSource(40, 20)

	for _, region := range Regions() {
		t.Run(region.String(), func(t *testing.T) {
			data, err := Crop(src, region)
			if err != nil {
				t.Fatalf("Crop: %v", err)
			}
			out := decodeCrop(t, data)
			if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
				t.Errorf("crop is %dx%d, want 20x20", out.Bounds().Dx(), out.Bounds().Dy())
			}
		})
	}
}

func TestCropRegionsSelectDifferentPixels(t *testing.T) {
	src := gradientSource(40, 20)

	firstRed := func(region Region) uint8 {
		data, err := Crop(src, region)
		if err != nil {
			t.Fatalf("Crop(%v): %v", region, err)
		}
		out := decodeCrop(t, data)
		r, _, _, _ := out.At(0, 0).RGBA()
		return uint8(r >> 8)
	}

	if got := firstRed(RegionLeft); got != 0 {
		t.Errorf("left crop starts at x=%d, want 0", got)
	}
	if got := firstRed(RegionCenter); got != 10 {
		t.Errorf("center crop starts at x=%d, want 10", got)
	}
	if got := firstRed(RegionRight); got != 20 {
		t.Errorf("right crop starts at x=%d, want 20", got)
	}
}

func TestCropRejectsMissingSource(t *testing.T) {
	if _, err := Crop(nil, RegionCenter); err == nil {
		t.Error("nil image must be rejected")
	}
	if _, err := Crop(image.NewRGBA(image.Rect(0, 0, 0, 0)), RegionCenter); err == nil {
		t.Error("empty image must be rejected")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientSource(4, 4)); err != nil {
		t.Fatal(err)
	}

	img, format, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q", format)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Error("garbage bytes must not decode")
	}
}
