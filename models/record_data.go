package models

import (
	"go-ekyc-ocr/document"
)

// RecordData is the wire form of one document face. Absent fields are null.
type RecordData struct {
	DocumentType   *string  `json:"document_type"`
	FullName       *string  `json:"full_name"`
	FirstName      *string  `json:"first_name"`
	MiddleName     *string  `json:"middle_name"`
	LastName       *string  `json:"last_name"`
	IDNumber       *string  `json:"id_number"`
	PassportNumber *string  `json:"passport_number"`
	DateOfBirth    *string  `json:"date_of_birth"`
	PlaceOfBirth   *string  `json:"place_of_birth"`
	Gender         *string  `json:"gender"`
	DateOfIssue    *string  `json:"date_of_issue"`
	DateOfExpiry   *string  `json:"date_of_expiry"`
	CardColor      *string  `json:"card_color"`
	HolderType     *string  `json:"holder_type"`
	Confidence     *float64 `json:"confidence"`
	RawText        *string  `json:"raw_text"`
}

// OCRData is the wire form of a merged front/back record.
type OCRData struct {
	DocumentType    *string  `json:"document_type"`
	FullName        *string  `json:"full_name"`
	FirstName       *string  `json:"first_name"`
	MiddleName      *string  `json:"middle_name"`
	LastName        *string  `json:"last_name"`
	IDNumber        *string  `json:"id_number"`
	PassportNumber  *string  `json:"passport_number"`
	DateOfBirth     *string  `json:"date_of_birth"`
	PlaceOfBirth    *string  `json:"place_of_birth"`
	Gender          *string  `json:"gender"`
	DateOfIssue     *string  `json:"date_of_issue"`
	DateOfExpiry    *string  `json:"date_of_expiry"`
	CardColor       *string  `json:"card_color"`
	HolderType      *string  `json:"holder_type"`
	RawTextFront    *string  `json:"raw_text_front"`
	RawTextBack     *string  `json:"raw_text_back"`
	ConfidenceFront *float64 `json:"confidence_front"`
	ConfidenceBack  *float64 `json:"confidence_back"`
	ExtractedTexts  []string `json:"extracted_texts"` // tokens of the front face
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewRecordData(r document.Record) RecordData {
	return RecordData{
		DocumentType:   optional(string(r.DocumentType)),
		FullName:       optional(r.FullName),
		FirstName:      optional(r.FirstName),
		MiddleName:     optional(r.MiddleName),
		LastName:       optional(r.LastName),
		IDNumber:       optional(r.IDNumber),
		PassportNumber: optional(r.PassportNumber),
		DateOfBirth:    optional(r.DateOfBirth),
		PlaceOfBirth:   optional(r.PlaceOfBirth),
		Gender:         optional(r.Gender),
		DateOfIssue:    optional(r.DateOfIssue),
		DateOfExpiry:   optional(r.DateOfExpiry),
		CardColor:      optional(r.CardColor),
		HolderType:     optional(r.HolderType),
		Confidence:     r.Confidence,
		RawText:        optional(r.RawText),
	}
}

func NewOCRData(m document.MergedRecord) OCRData {
	return OCRData{
		DocumentType:    optional(string(m.DocumentType)),
		FullName:        optional(m.FullName),
		FirstName:       optional(m.FirstName),
		MiddleName:      optional(m.MiddleName),
		LastName:        optional(m.LastName),
		IDNumber:        optional(m.IDNumber),
		PassportNumber:  optional(m.PassportNumber),
		DateOfBirth:     optional(m.DateOfBirth),
		PlaceOfBirth:    optional(m.PlaceOfBirth),
		Gender:          optional(m.Gender),
		DateOfIssue:     optional(m.DateOfIssue),
		DateOfExpiry:    optional(m.DateOfExpiry),
		CardColor:       optional(m.CardColor),
		HolderType:      optional(m.HolderType),
		RawTextFront:    optional(m.RawTextFront),
		RawTextBack:     optional(m.RawTextBack),
		ConfidenceFront: m.ConfidenceFront,
		ConfidenceBack:  m.ConfidenceBack,
	}
}
