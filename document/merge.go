package document

// MergedRecord reconciles the front and back face of one card. The embedded
// Record never carries RawText or Confidence, those are kept per face.
type MergedRecord struct {
	Record
	RawTextFront    string
	RawTextBack     string
	ConfidenceFront *float64
	ConfidenceBack  *float64
}

// Merge starts from the front record and lets the back fill fields the front
// is missing. Front wins whenever both carry a value.
//
// Adopted names and ID numbers are taken as-is: name parts and the card
// classification keep whatever the front computed.
func Merge(front, back Record) MergedRecord {
	merged := MergedRecord{
		Record:          front,
		RawTextFront:    front.RawText,
		RawTextBack:     back.RawText,
		ConfidenceFront: front.Confidence,
		ConfidenceBack:  back.Confidence,
	}

	fillMissing(&merged.DateOfIssue, back.DateOfIssue)
	fillMissing(&merged.DateOfExpiry, back.DateOfExpiry)
	fillMissing(&merged.PlaceOfBirth, back.PlaceOfBirth)
	fillMissing(&merged.FullName, back.FullName)
	fillMissing(&merged.IDNumber, back.IDNumber)

	merged.RawText = ""
	merged.Confidence = nil
	return merged
}

func fillMissing(field *string, fallback string) {
	if *field == "" && fallback != "" {
		*field = fallback
	}
}
