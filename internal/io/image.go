package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// ThumbSuffix names the generated thumbnail next to a cover image:
// cover.png produces cover_small.jpg.
const ThumbSuffix = "_small.jpg"

// Thumbnailer generates resized cover thumbnails for the game grid.
//
// Thumbnails are JPEG, fit within MaxSize on both edges with aspect
// ratio preserved, and are regenerated only when older than their
// source cover.
type Thumbnailer struct {
	// MaxSize is the maximum thumbnail edge in pixels.
	MaxSize int
}

// ThumbPath returns the thumbnail path for a cover image path.
func ThumbPath(coverPath string) string {
	ext := filepath.Ext(coverPath)
	return strings.TrimSuffix(coverPath, ext) + ThumbSuffix
}

// Generate writes the thumbnail for a cover image, skipping the work
// when an up-to-date thumbnail already exists. It returns the
// thumbnail path.
func (t *Thumbnailer) Generate(coverPath string) (string, error) {
	thumbPath := ThumbPath(coverPath)

	srcInfo, err := os.Stat(coverPath)
	if err != nil {
		return "", err
	}
	if thumbInfo, err := os.Stat(thumbPath); err == nil && !thumbInfo.ModTime().Before(srcInfo.ModTime()) {
		return thumbPath, nil
	}

	data, err := os.ReadFile(coverPath)
	if err != nil {
		return "", err
	}

	resized, err := t.Resize(data)
	if err != nil {
		return "", err
	}

	if err := WriteFileAtomic(thumbPath, resized); err != nil {
		return "", err
	}
	return thumbPath, nil
}

// Resize scales an image to fit within MaxSize on both edges,
// preserving aspect ratio, and returns JPEG-encoded bytes.
//
// The Catmull-Rom algorithm is used for high-quality scaling.
func (t *Thumbnailer) Resize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > t.MaxSize || height > t.MaxSize {
		ratio := float64(width) / float64(height)
		if ratio > 1 {
			width = t.MaxSize
			height = int(float64(t.MaxSize) / ratio)
		} else {
			height = t.MaxSize
			width = int(float64(t.MaxSize) * ratio)
		}
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
