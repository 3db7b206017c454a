// Package qr renders plaque QR codes that link a printed grave marker to
// its entry on the map.
package qr

import (
	"fmt"
	"image/color"
	"image/png"
	"io"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels when none is given.
const DefaultSize = 512

// Options controls rendering. Zero values mean black on white at DefaultSize.
type Options struct {
	Size int
	Fg   color.RGBA
	Bg   color.RGBA
}

// GraveURL returns the deep link that opens key on the map.
func GraveURL(publicURL, key string) string {
	base := strings.TrimRight(publicURL, "/")
	return base + "/?grave=" + url.QueryEscape(key)
}

// EncodePNG writes a QR code for content as PNG at medium error correction.
func EncodePNG(w io.Writer, content string, opt Options) error {
	if content == "" {
		return fmt.Errorf("qr content is empty")
	}
	if opt.Size <= 0 {
		opt.Size = DefaultSize
	}
	if (opt.Fg == color.RGBA{}) {
		opt.Fg = color.RGBA{0, 0, 0, 255}
	}
	if (opt.Bg == color.RGBA{}) {
		opt.Bg = color.RGBA{255, 255, 255, 255}
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encoding qr: %w", err)
	}
	code.ForegroundColor = opt.Fg
	code.BackgroundColor = opt.Bg

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, code.Image(opt.Size))
}
