package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/eak1mov/go-bluenoise/density"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func deduceFormat(format, filePath string) string {
	if format == "" && (strings.HasSuffix(filePath, ".db") || strings.HasSuffix(filePath, ".sqlite")) {
		return "sqlite"
	}
	if format == "" {
		return "bin"
	}
	return format
}

type viewportFlag [4]float32

func (v *viewportFlag) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", v[0], v[1], v[2], v[3])
}

func (v *viewportFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return fmt.Errorf("viewport %q: want left,bottom,right,top", value)
	}
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return fmt.Errorf("viewport %q: %w", value, err)
		}
		v[i] = float32(f)
	}
	return nil
}

func defaultViewport() viewportFlag {
	return viewportFlag{-0.5, -0.5, 0.5, 0.5}
}

func loadImage(filePath string) (image.Image, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filePath, err)
	}
	return img, nil
}

// parseColor parses "rrggbb" or "rrggbbaa", with an optional leading '#'.
func parseColor(value string) (color.NRGBA, error) {
	value = strings.TrimPrefix(value, "#")
	if len(value) == 6 {
		value += "ff"
	}
	if len(value) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want rrggbb or rrggbbaa", value)
	}
	rgba, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", value, err)
	}
	return color.NRGBA{R: uint8(rgba >> 24), G: uint8(rgba >> 16), B: uint8(rgba >> 8), A: uint8(rgba)}, nil
}

func parseModel(name string) (density.Model, error) {
	switch name {
	case "luminance":
		return density.Luminance, nil
	case "invluminance", "":
		return density.InvLuminance, nil
	case "alpha":
		return density.Alpha, nil
	case "invalpha":
		return density.InvAlpha, nil
	}
	return nil, fmt.Errorf("invalid channel: %q", name)
}
