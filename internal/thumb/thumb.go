// Package thumb turns preview bytes from the backend into terminal art:
// two image rows per text row using upper half blocks.
package thumb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math"
	"strings"
	"time"

	"folderpick/internal/errors"
	"folderpick/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	"github.com/patrickmn/go-cache"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
	// pixels with less alpha than this are drawn as background
	alphaCutoff = 0x8000
)

// Fetcher downloads preview bytes
type Fetcher interface {
	Thumbnail(ctx context.Context, path string) ([]byte, error)
	View(ctx context.Context, path string) ([]byte, error)
}

// Loader fetches, decodes and renders card previews, keeping rendered
// results in a TTL cache keyed by path and size.
type Loader struct {
	fetch Fetcher
	cache *cache.Cache
}

// NewLoader creates a loader whose rendered thumbnails expire after ttl
func NewLoader(f Fetcher, ttl time.Duration) *Loader {
	return &Loader{
		fetch: f,
		cache: cache.New(ttl, 2*ttl),
	}
}

func cacheKey(card types.Card, cols, rows int) string {
	return fmt.Sprintf("%s|%d|%dx%d", card.Path, card.Thumb, cols, rows)
}

// Cached returns a previously rendered preview without fetching
func (l *Loader) Cached(card types.Card, cols, rows int) (string, bool) {
	v, ok := l.cache.Get(cacheKey(card, cols, rows))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Load renders card's preview into a cols×rows block of text
func (l *Loader) Load(ctx context.Context, card types.Card, cols, rows int) (string, error) {
	if s, ok := l.Cached(card, cols, rows); ok {
		return s, nil
	}

	var (
		data []byte
		err  error
	)
	switch card.Thumb {
	case types.ThumbScaled:
		data, err = l.fetch.Thumbnail(ctx, card.Path)
	case types.ThumbRaw:
		data, err = l.fetch.View(ctx, card.Path)
	default:
		return "", errors.NewKind(errors.ThumbnailFailed, "card has no preview: "+card.Path)
	}
	if err != nil {
		return "", err
	}

	img, err := Decode(data, cols, rows*2)
	if err != nil {
		return "", errors.WrapKind(err, errors.ThumbnailFailed, card.Path)
	}
	out := Render(img, cols, rows)
	l.cache.SetDefault(cacheKey(card, cols, rows), out)
	return out, nil
}

// Flush drops every cached preview
func (l *Loader) Flush() {
	l.cache.Flush()
}

// Decode sniffs data, decodes it and scales it to fit maxW×maxH pixels,
// keeping the aspect ratio
func Decode(data []byte, maxW, maxH int) (image.Image, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, errors.Newf("invalid preview size %dx%d", maxW, maxH)
	}

	mime := mimetype.Detect(data)
	if mime.Is("image/svg+xml") {
		return rasterizeSVG(data, maxW, maxH)
	}
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, errors.Newf("not an image: %s", mime.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", mime.String())
	}
	return resize.Thumbnail(uint(maxW), uint(maxH), img, resize.Lanczos3), nil
}

// fit scales w×h down or up to the largest size inside maxW×maxH
func fit(w, h float64, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := math.Min(float64(maxW)/w, float64(maxH)/h)
	fw := int(math.Max(1, math.Round(w*scale)))
	fh := int(math.Max(1, math.Round(h*scale)))
	return fw, fh
}

func rasterizeSVG(data []byte, maxW, maxH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	w, h := fit(icon.ViewBox.W, icon.ViewBox.H, maxW, maxH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

func hexColor(c color.Color) (lipgloss.Color, bool) {
	r, g, b, a := c.RGBA()
	if a < alphaCutoff {
		return "", false
	}
	// un-premultiply so half transparent edges keep their hue
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)), true
}

// Render draws img centered in a cols×rows block. Every line is exactly
// cols cells wide.
func Render(img image.Image, cols, rows int) string {
	b := img.Bounds()
	offX := (cols - b.Dx()) / 2
	offY := (rows*2 - b.Dy()) / 2

	pixel := func(x, y int) (lipgloss.Color, bool) {
		px, py := x-offX, y-offY
		if px < 0 || py < 0 || px >= b.Dx() || py >= b.Dy() {
			return "", false
		}
		return hexColor(img.At(b.Min.X+px, b.Min.Y+py))
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top, hasTop := pixel(x, row*2)
			bottom, hasBottom := pixel(x, row*2+1)
			switch {
			case hasTop && hasBottom:
				sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render(upperHalf))
			case hasTop:
				sb.WriteString(lipgloss.NewStyle().Foreground(top).Render(upperHalf))
			case hasBottom:
				sb.WriteString(lipgloss.NewStyle().Foreground(bottom).Render(lowerHalf))
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
