package document

type DocumentType string

const (
	NationalID DocumentType = "National ID"
	Passport   DocumentType = "Passport"
	Unknown    DocumentType = "Unknown"
)

// Card colors and holder types of Brunei identity cards.
const (
	ColorYellow  = "Yellow"
	ColorRed     = "Red"
	ColorGreen   = "Green"
	ColorUnknown = "Unknown"

	HolderNational          = "Brunei National"
	HolderPermanentResident = "Permanent Resident"
	HolderForeigner         = "Foreigner"
	HolderUnknown           = "Unknown"
)

// Record holds the fields recovered from one scanned document face. Empty
// strings mark absent fields. Name parts are always derived from FullName.
type Record struct {
	DocumentType   DocumentType
	FullName       string
	FirstName      string
	MiddleName     string
	LastName       string
	IDNumber       string
	PassportNumber string
	DateOfBirth    string
	PlaceOfBirth   string
	Gender         string
	DateOfIssue    string
	DateOfExpiry   string
	CardColor      string
	HolderType     string
	Confidence     *float64
	RawText        string
}

// WithConfidence returns a copy of the record carrying the OCR confidence.
func (r Record) WithConfidence(confidence float64) Record {
	r.Confidence = &confidence
	return r
}
