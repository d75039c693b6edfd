// Package export serializes rendered frames into animated image files.
package export

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/setanarut/apng"
)

// WriteGIF encodes frames as an animated GIF. delay is per-frame delay in
// 10ms units, applied uniformly.
func WriteGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}

	anim := &gif.GIF{
		Image: frames,
		Delay: make([]int, len(frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// WriteAPNG encodes frames as an animated PNG. delay is per-frame delay in
// 10ms units.
func WriteAPNG(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}

	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f
	}
	if err := apng.Save(path, imgs, uint16(delay)); err != nil {
		return fmt.Errorf("encoding apng: %w", err)
	}
	return nil
}

// Write picks the encoder from the output extension: .gif or .png.
func Write(path string, frames []*image.Paletted, delay int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return WriteGIF(path, frames, delay)
	case ".png":
		return WriteAPNG(path, frames, delay)
	default:
		return fmt.Errorf("export: unsupported output extension %q (want .gif or .png)", filepath.Ext(path))
	}
}
