package ocr

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTokens folds compatibility characters (full-width digits,
// ligatures) so the extractors see plain ASCII shapes. Token count and order
// are preserved.
func NormalizeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.TrimSpace(norm.NFKC.String(t))
	}
	return out
}
