package density

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// A Model converts a color to a density in [0, 1].
type Model interface {
	Convert(c color.Color) float32
}

// ModelFunc returns a Model that invokes f to implement the conversion.
func ModelFunc(f func(color.Color) float32) Model {
	return modelFunc(f)
}

type modelFunc func(color.Color) float32

func (m modelFunc) Convert(c color.Color) float32 { return m(c) }

// Default models. The Inv variants make dark or transparent pixels dense.
var (
	Luminance    Model = ModelFunc(luminance)
	InvLuminance Model = ModelFunc(func(c color.Color) float32 { return 1 - luminance(c) })
	Alpha        Model = ModelFunc(alpha)
	InvAlpha     Model = ModelFunc(func(c color.Color) float32 { return 1 - alpha(c) })
)

func luminance(c color.Color) float32 {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	return float32(g.Y) / 0xffff
}

func alpha(c color.Color) float32 {
	_, _, _, a := c.RGBA()
	return float32(a) / 0xffff
}

// Resample scales img down so that neither side exceeds maxSize, preserving
// aspect. Images that already fit are converted to NRGBA at full size.
func Resample(img image.Image, maxSize int) *image.NRGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && max(width, height) > maxSize {
		if width >= height {
			width, height = maxSize, max(1, height*maxSize/width)
		} else {
			width, height = max(1, width*maxSize/height), maxSize
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}
	return dst
}

// FromImage converts every pixel of img through m.
func FromImage(img image.Image, m Model) *Field {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	values := make([]float32, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			values = append(values, m.Convert(img.At(x, y)))
		}
	}
	return &Field{width: width, height: height, values: values}
}

// PackColor returns the FromColorKey background value matching c in NRGBA pixels.
func PackColor(c color.NRGBA) uint32 {
	return PackBytes([]byte{c.R, c.G, c.B, c.A})
}
