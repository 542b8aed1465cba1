// Package imaging is the wizard's crop boundary: decode the source photo
// and cut a square region out of it. Anything fancier belongs to the
// rendering backend.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"
)

// Region selects which part of the source photo the square crop keeps.
type Region int

const (
	RegionCenter Region = iota
	RegionTop
	RegionBottom
	RegionLeft
	RegionRight
)

// String returns the display name of the region.
func (r Region) String() string {
	switch r {
	case RegionTop:
		return "Top"
	case RegionBottom:
		return "Bottom"
	case RegionLeft:
		return "Left"
	case RegionRight:
		return "Right"
	default:
		return "Center"
	}
}

// Regions lists the crop presets in display order.
func Regions() []Region {
	return []Region{RegionCenter, RegionTop, RegionBottom, RegionLeft, RegionRight}
}

// Decode parses JPEG, PNG or GIF bytes into an image.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode source photo: %w", err)
	}
	return img, format, nil
}

// Crop cuts the largest square the region allows out of img and re-encodes
// it as PNG, the format the finalize upload expects.
func Crop(img image.Image, region Region) ([]byte, error) {
	if img == nil {
		return nil, errors.New("imaging: no source image")
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("imaging: source image is empty")
	}

	side := w
	if h < side {
		side = h
	}

	rect := squareRect(bounds, side, region)
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("imaging: encode crop: %w", err)
	}
	return buf.Bytes(), nil
}

func squareRect(bounds image.Rectangle, side int, region Region) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	x := bounds.Min.X + (w-side)/2
	y := bounds.Min.Y + (h-side)/2

	switch region {
	case RegionTop:
		y = bounds.Min.Y
	case RegionBottom:
		y = bounds.Max.Y - side
	case RegionLeft:
		x = bounds.Min.X
	case RegionRight:
		x = bounds.Max.X - side
	}
	return image.Rect(x, y, x+side, y+side)
}
