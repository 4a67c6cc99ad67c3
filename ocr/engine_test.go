package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Zero(t, Mean(nil))
	require.InDelta(t, 0.5, Mean([]float64{0.25, 0.75}), 1e-9)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 0.93, Round2(0.92666))
	require.Equal(t, 0.9, Round2(0.9))
	require.Equal(t, 0.0, Round2(0))
}

func TestNormalizeTokens(t *testing.T) {
	t.Run("full width characters become ascii", func(t *testing.T) {
		out := NormalizeTokens([]string{"００-１２７０３９", "ＮＡＭＡ", " LELAKI "})
		require.Equal(t, []string{"00-127039", "NAMA", "LELAKI"}, out)
	})

	t.Run("count and order are kept", func(t *testing.T) {
		in := []string{"b", "", "a"}
		out := NormalizeTokens(in)
		require.Equal(t, in, out)
		require.Empty(t, NormalizeTokens(nil))
	})
}
