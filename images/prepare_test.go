package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepare(t *testing.T) {
	opts := DefaultOptions()
	opts.EnhanceContrast = false

	t.Run("large scans are downscaled to the maximum side", func(t *testing.T) {
		out := Prepare(solidImage(5000, 100, color.White), opts)
		require.Equal(t, 4000, out.Bounds().Dx())
		require.Equal(t, 80, out.Bounds().Dy())
	})

	t.Run("small scans are upscaled", func(t *testing.T) {
		out := Prepare(solidImage(300, 200, color.White), opts)
		require.Equal(t, 600, out.Bounds().Dx())
		require.Equal(t, 400, out.Bounds().Dy())
	})

	t.Run("scans in range keep their size", func(t *testing.T) {
		src := solidImage(1000, 800, color.White)
		out := Prepare(src, opts)
		require.Same(t, src, out)
	})

	t.Run("contrast enhancement produces grayscale", func(t *testing.T) {
		opts := DefaultOptions()
		out := Prepare(solidImage(700, 400, color.White), opts)
		_, ok := out.(*image.Gray)
		require.True(t, ok)
		require.Equal(t, 700, out.Bounds().Dx())
	})
}

func TestEqualize(t *testing.T) {
	t.Run("two levels are stretched to black and white", func(t *testing.T) {
		src := solidImage(10, 10, color.Gray{Y: 50})
		for x := range 10 {
			src.Set(x, 0, color.Gray{Y: 100})
		}

		out := equalize(src)
		require.Equal(t, uint8(0), out.GrayAt(0, 5).Y)
		require.Equal(t, uint8(255), out.GrayAt(0, 0).Y)
	})

	t.Run("single level is left alone", func(t *testing.T) {
		out := equalize(solidImage(4, 4, color.Gray{Y: 77}))
		require.Equal(t, uint8(77), out.GrayAt(2, 2).Y)
	})
}
