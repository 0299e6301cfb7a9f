package xyz

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/eak1mov/go-bluenoise/points"
)

type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/points/{z}/{x}/{y}.bin").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	regexPattern := regexp.QuoteMeta(filePattern)
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{x}"), "(?P<x>\\d+)")
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{y}"), "(?P<y>\\d+)")
	regexPattern = strings.ReplaceAll(regexPattern, regexp.QuoteMeta("{z}"), "(?P<z>\\d+)")
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(filePattern, TileID{X: 0, Y: 0, Z: 0})
	path1 := formatPattern(filePattern, TileID{X: 1, Y: 1, Z: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	rootDir := path0

	return &Reader{filePattern, rootDir, pathRegex}, nil
}

// ReadTile returns the points of a tile, or no points if the tile was never written.
func (r *Reader) ReadTile(tileID TileID) ([]points.Item, error) {
	filePath := formatPattern(r.filePattern, tileID)
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return make([]points.Item, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return points.ReadAll(data)
}

func (r *Reader) VisitTiles(visitor func(TileID, []points.Item) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		x, _ := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("x")], 10, 32)
		y, _ := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("y")], 10, 32)
		z, _ := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex("z")], 10, 32)

		data, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		items, err := points.ReadAll(data)
		if err != nil {
			return fmt.Errorf("%v: %w", filePath, err)
		}

		return visitor(TileID{X: uint32(x), Y: uint32(y), Z: uint32(z)}, items)
	})
}
