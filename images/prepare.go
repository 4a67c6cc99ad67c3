package images

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Options controls how a scan is prepared for OCR.
type Options struct {
	// MaxSide is the longest side allowed before the image is downscaled.
	MaxSide int `json:"max_side" yaml:"max_side"`
	// MinSide is the longest side below which the image is upscaled.
	MinSide         int     `json:"min_side" yaml:"min_side"`
	UpscaleFactor   float64 `json:"upscale_factor" yaml:"upscale_factor"`
	EnhanceContrast bool    `json:"enhance_contrast" yaml:"enhance_contrast"`
}

func DefaultOptions() Options {
	return Options{
		MaxSide:         4000,
		MinSide:         600,
		UpscaleFactor:   2,
		EnhanceContrast: true,
	}
}

// Prepare resizes a decoded scan into the range OCR engines handle well and
// optionally stretches its contrast.
func Prepare(img image.Image, opts Options) image.Image {
	bounds := img.Bounds()
	longest := max(bounds.Dx(), bounds.Dy())

	switch {
	case opts.MaxSide > 0 && longest > opts.MaxSide:
		img = resizeToFit(img, opts.MaxSide, opts.MaxSide)
	case opts.MinSide > 0 && longest < opts.MinSide && opts.UpscaleFactor > 1:
		img = scaleBy(img, opts.UpscaleFactor)
	}

	if opts.EnhanceContrast {
		img = equalize(img)
	}

	slog.Debug("Prepared image", "width", img.Bounds().Dx(), "height", img.Bounds().Dy(),
		"enhanced", opts.EnhanceContrast)
	return img
}

// resizeToFit scales img to fit within maxW×maxH (keeping aspect ratio)
func resizeToFit(src image.Image, maxW, maxH int) image.Image {
	bw := src.Bounds().Dx()
	bh := src.Bounds().Dy()

	scale := math.Min(float64(maxW)/float64(bw), float64(maxH)/float64(bh))
	if scale >= 1.0 {
		return src // already small enough
	}
	return scaleBy(src, scale)
}

func scaleBy(src image.Image, scale float64) image.Image {
	w := int(math.Max(1, math.Round(float64(src.Bounds().Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(src.Bounds().Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// CatmullRom keeps glyph edges sharp
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// equalize converts to grayscale and spreads the luminance histogram over the
// full range.
func equalize(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	var hist [256]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			gray.SetGray(x-bounds.Min.X, y-bounds.Min.Y, g)
			hist[g.Y]++
		}
	}

	total := bounds.Dx() * bounds.Dy()
	var cdf [256]int
	running, cdfMin := 0, 0
	for i, n := range hist {
		running += n
		cdf[i] = running
		if cdfMin == 0 && running > 0 {
			cdfMin = running
		}
	}
	// A single luminance level has nothing to spread.
	if total == cdfMin {
		return gray
	}

	var lut [256]uint8
	for i := range lut {
		if cdf[i] < cdfMin {
			continue
		}
		lut[i] = uint8(math.Round(float64(cdf[i]-cdfMin) / float64(total-cdfMin) * 255))
	}
	for i, v := range gray.Pix {
		gray.Pix[i] = lut[v]
	}
	return gray
}
