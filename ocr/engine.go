package ocr

import (
	"context"
	"math"
)

// Engine recognises the text on a prepared PNG image.
type Engine interface {
	// Recognize returns the tokens in reading order. An image without text is
	// not an error and yields an empty result.
	Recognize(ctx context.Context, png []byte) (Result, error)

	// Name identifies the engine in logs and cache keys.
	Name() string
}

// Result is the token stream recognised on one image. Scores, when present,
// hold one confidence per token in the same order.
type Result struct {
	Tokens     []string  `json:"tokens"`
	Scores     []float64 `json:"scores,omitempty"`
	Confidence float64   `json:"confidence"`
}

// Mean is the average of the scores, 0 when there are none.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// Round2 rounds a confidence to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
