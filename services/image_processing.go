package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// RGBToColorName maps an averaged RGB sample onto the small color
// vocabulary the scoring tables understand.
func RGBToColorName(r, g, b uint8) string {
	// black/white detection first
	if r < 60 && g < 60 && b < 60 {
		return "black"
	}
	if r > 210 && g > 210 && b > 210 {
		return "white"
	}

	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	rg := abs(int(r) - int(g))
	gb := abs(int(g) - int(b))
	rb := abs(int(r) - int(b))

	// grey ladder, all channels close together
	if rg < 18 && gb < 18 && rb < 18 {
		if r > 180 {
			return "light grey"
		}
		if r > 130 {
			return "grey"
		}
		if r > 90 {
			return "dark grey"
		}
		return "charcoal"
	}

	if b > r && b > g {
		return "blue"
	}
	if r > g && r > b {
		if r > 160 && g > 120 && b < 90 {
			return "brown"
		}
		if r > 200 && g > 180 && b < 140 {
			return "beige"
		}
		return "red"
	}
	if g > r && g > b {
		return "green"
	}

	if r > 160 && g > 120 && b < 90 {
		return "brown"
	}
	if r > 200 && g > 180 && b < 140 {
		return "beige"
	}

	return "dark"
}

// DominantColorName decodes a wardrobe photo and names the average color
// of its central region. The border is skipped because item photos tend
// to carry a light studio background.
func DominantColorName(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return "", fmt.Errorf("empty image")
	}

	// central crop skips the studio background, then a small resize keeps
	// the averaging loop cheap for large uploads
	cropW := width / 2
	if cropW < 1 {
		cropW = 1
	}
	cropH := height / 2
	if cropH < 1 {
		cropH = 1
	}
	sample := imaging.CropCenter(img, cropW, cropH)
	if sample.Bounds().Dx() > 64 || sample.Bounds().Dy() > 64 {
		sample = imaging.Resize(sample, 64, 0, imaging.Lanczos)
	}

	sBounds := sample.Bounds()
	var sumR, sumG, sumB, count uint64
	for y := sBounds.Min.Y; y < sBounds.Max.Y; y++ {
		for x := sBounds.Min.X; x < sBounds.Max.X; x++ {
			r, g, b, _ := sample.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
			count++
		}
	}
	if count == 0 {
		return "", fmt.Errorf("image too small to sample")
	}

	return RGBToColorName(
		uint8(sumR/count),
		uint8(sumG/count),
		uint8(sumB/count),
	), nil
}
