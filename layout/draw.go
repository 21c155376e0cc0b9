package layout

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/quartercastle/vector"
	"golang.org/x/exp/constraints"
)

const (
	drawWidth  = 800
	drawHeight = 600
	drawMargin = 20
)

func clamp[T constraints.Ordered](in, lo, hi T) T {
	if in > hi {
		return hi
	} else if in < lo {
		return lo
	}
	return in
}

// DrawPNG renders an embedding into a PNG file, scaling the bounding box of
// the positions into the frame with a margin.
func DrawPNG(positions []vector.Vector, filename string, invertColor bool) error {
	img := image.NewRGBA(image.Rect(0, 0, drawWidth, drawHeight))
	background, nodeColor := color.Color(color.White), color.Color(color.Black)
	if invertColor {
		background, nodeColor = nodeColor, background
	}
	for y := 0; y < drawHeight; y++ {
		for x := 0; x < drawWidth; x++ {
			img.Set(x, y, background)
		}
	}
	spanX, spanY := axisSpreads(positions)
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range positions {
		minX = math.Min(minX, p.X())
		minY = math.Min(minY, p.Y())
	}
	toPixel := func(v, min, span float64, frame int) int {
		if span == 0 {
			return frame / 2
		}
		px := drawMargin + int(math.Round((v-min)/span*float64(frame-2*drawMargin)))
		return clamp(px, 0, frame-1)
	}
	for _, p := range positions {
		img.Set(
			toPixel(p.X(), minX, spanX, drawWidth),
			toPixel(p.Y(), minY, spanY, drawHeight),
			nodeColor,
		)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
