package models

import (
	"go-ekyc-ocr/document"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type EKYCResponse struct {
	Status    string         `json:"status"`
	OCRData   OCRData        `json:"ocr_data"`
	IsExpired *bool          `json:"is_expired,omitempty"` // only when the expiry date parses
	SideCheck *SideCheckData `json:"side_check,omitempty"`
}

type DocumentResponse struct {
	RecordData
	ExtractedTexts []string `json:"extracted_texts"`
}

type SideCheckData struct {
	IDNumberMatch  *bool    `json:"id_number_match"`
	NameSimilarity *float64 `json:"name_similarity"`
	NameMatch      *bool    `json:"name_match"`
	Consistent     bool     `json:"consistent"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Ok     bool   `json:"ok"`
	Engine string `json:"engine,omitempty"`
}

func NewSideCheckData(c document.SideCheck) *SideCheckData {
	return &SideCheckData{
		IDNumberMatch:  c.IDNumberMatch,
		NameSimilarity: c.NameSimilarity,
		NameMatch:      c.NameMatch,
		Consistent:     c.Consistent(),
	}
}
