package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"fyne.io/fyne/v2"
)

const iconSize = 64

var (
	// RedIcon is shown while the target has not been reached.
	RedIcon = fyne.NewStaticResource("monic-red.png", discPNG(color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}))
	// GreenIcon is shown once the target has been reached.
	GreenIcon = fyne.NewStaticResource("monic-green.png", discPNG(color.NRGBA{R: 0x38, G: 0x8e, B: 0x3c, A: 0xff}))
)

// discPNG renders a filled, anti-aliased disc on a transparent square.
func discPNG(c color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize) / 2
	radius := center - 2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			cover := math.Max(0, math.Min(1, radius+0.5-math.Hypot(dx, dy)))
			if cover == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * cover)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err) // in-memory encode of a valid image
	}
	return buf.Bytes()
}
