package models

// ExtractRequest carries a token stream recognised elsewhere.
type ExtractRequest struct {
	Tokens     []string `json:"tokens"`
	Confidence *float64 `json:"confidence,omitempty"` // 0-1 OCR confidence
}

// MergeTokensRequest carries the token streams of both faces of one card.
type MergeTokensRequest struct {
	Front ExtractRequest `json:"front"`
	Back  ExtractRequest `json:"back"`
}
