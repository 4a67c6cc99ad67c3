package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"pault.ag/go/cbeff/jpeg2000"
)

const FormatJPEG2000 = "jpeg2000"

// ErrUnreadableImage is returned for uploads that cannot be decoded.
var ErrUnreadableImage = errors.New("unreadable image")

var (
	jp2Signature = []byte{0x00, 0x00, 0x00, 0x0C, 0x6A, 0x50, 0x20, 0x20}
	j2kSignature = []byte{0xFF, 0x4F, 0xFF, 0x51}
)

// Validate checks an upload before it is decoded and returns its format.
// A maxBytes of 0 disables the size check.
func Validate(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: no image data provided", ErrUnreadableImage)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: image of %d bytes exceeds limit of %d", ErrUnreadableImage, len(data), maxBytes)
	}
	if bytes.HasPrefix(data, jp2Signature) || bytes.HasPrefix(data, j2kSignature) {
		return FormatJPEG2000, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return "", fmt.Errorf("%w: empty %s image", ErrUnreadableImage, format)
	}
	slog.Debug("Validated image", "format", format, "width", cfg.Width, "height", cfg.Height)
	return format, nil
}

// Decode attempts to decode an image from bytes, trying multiple formats
func Decode(data []byte) (image.Image, error) {
	// Try JPEG first (most common)
	if img, err := jpeg.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	// Try JPEG 2000 (JP2/J2K)
	if img, err := jpeg2000.Parse(data); err == nil {
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported or invalid image format", ErrUnreadableImage)
	}
	return img, nil
}

// EncodePNG encodes a prepared image as the PNG handed to OCR engines.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 is the transport form used by HTTP OCR engines.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
