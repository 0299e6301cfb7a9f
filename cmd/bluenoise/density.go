package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/density"
	"golang.org/x/image/draw"
)

// densityFlags selects how an image, if any, becomes the density field.
type densityFlags struct {
	imagePath string
	channel   string
	key       string
	invert    bool
	maxSize   int
}

func (d *densityFlags) register(f *flag.FlagSet) {
	f.StringVar(&d.imagePath, "img", "", "Density image (png, jpeg, bmp, tiff, webp)")
	f.StringVar(&d.channel, "channel", "", "Image channel (invluminance, luminance, alpha, invalpha); default is gray levels, dark is dense")
	f.StringVar(&d.key, "key", "", "Background color key (rrggbb[aa]); pixels of other colors are dense")
	f.BoolVar(&d.invert, "invert", false, "Invert the color key mask")
	f.IntVar(&d.maxSize, "size", 1024, "Resample the image so its longer side is at most this many pixels")
}

func (d *densityFlags) apply(ctx *bluenoise.Context) error {
	if d.imagePath == "" {
		return nil
	}
	src, err := loadImage(d.imagePath)
	if err != nil {
		return err
	}
	img := density.Resample(src, d.maxSize)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	switch {
	case d.key != "":
		background, err := parseColor(d.key)
		if err != nil {
			return err
		}
		return ctx.SetDensityFromColorKey(img.Pix, width, height, 4, density.PackColor(background), d.invert)
	case d.channel != "":
		model, err := parseModel(d.channel)
		if err != nil {
			return err
		}
		ctx.SetDensity(density.FromImage(img, model))
	default:
		gray := image.NewGray(img.Bounds())
		draw.Draw(gray, gray.Bounds(), img, image.Point{}, draw.Src)
		ctx.SetDensityFromGray(gray.Pix, width, height, 1)
	}
	return nil
}

func (d *densityFlags) String() string {
	if d.imagePath == "" {
		return "uniform"
	}
	return fmt.Sprintf("%v (key %q, channel %q)", d.imagePath, d.key, d.channel)
}
