// Package resource loads and caches image assets from an fs.FS.
package resource

import (
	"errors"
	"fmt"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrNotFound is returned when no file matches an image path.
var ErrNotFound = errors.New("image not found")

// Extensions tried, in order, when a path has no extension.
var Extensions = []string{".png", ".jpg"}

const placeholderSize = 64

var placeholderColor = color.RGBA{0xff, 0x00, 0xff, 0xff}

// Cache loads images on first use and keeps them for the process lifetime.
type Cache struct {
	fsys         fs.FS
	placeholders bool
	images       map[string]*ebiten.Image
}

// NewCache creates a cache over fsys. With placeholders set, missing files
// produce a flat placeholder image instead of an error.
func NewCache(fsys fs.FS, placeholders bool) *Cache {
	return &Cache{
		fsys:         fsys,
		placeholders: placeholders,
		images:       make(map[string]*ebiten.Image),
	}
}

// Image returns the image at p, loading it if needed.
func (c *Cache) Image(p string) (*ebiten.Image, error) {
	key := Normalize(p)
	if img, ok := c.images[key]; ok {
		return img, nil
	}

	resolved, err := Resolve(c.fsys, key)
	if errors.Is(err, ErrNotFound) && c.placeholders {
		log.Printf("Missing image %s, using placeholder", key)
		img := ebiten.NewImage(placeholderSize, placeholderSize)
		img.Fill(placeholderColor)
		c.images[key] = img
		return img, nil
	}
	if err != nil {
		return nil, err
	}

	img, _, err := ebitenutil.NewImageFromFileSystem(c.fsys, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", resolved, err)
	}
	c.images[key] = img
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return len(c.images)
}

// Normalize converts p to a clean slash-separated fs.FS path.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// Resolve finds the file for p. A path without an extension is tried with
// each of Extensions in turn.
func Resolve(fsys fs.FS, p string) (string, error) {
	p = Normalize(p)
	candidates := []string{p}
	if path.Ext(p) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, p+ext)
		}
	}

	for _, candidate := range candidates {
		info, err := fs.Stat(fsys, candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, p)
}
