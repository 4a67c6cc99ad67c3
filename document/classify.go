package document

import (
	"log/slog"
)

// ClassifyID maps the holder prefix of an ID number to its card color and
// holder type.
func ClassifyID(idNumber string) (color, holder string) {
	if len(idNumber) < 2 {
		return ColorUnknown, HolderUnknown
	}
	switch idNumber[:2] {
	case "50", "51":
		return ColorGreen, HolderForeigner
	case "30", "31":
		return ColorRed, HolderPermanentResident
	case "00", "01":
		return ColorYellow, HolderNational
	default:
		return ColorUnknown, HolderUnknown
	}
}

// ExtractAllDetails runs every field extractor over the stream. The document
// type and card classification are left to the caller.
func ExtractAllDetails(tokens []string) Record {
	fullName := ExtractFullName(tokens)
	name := SplitName(fullName)
	return Record{
		FullName:     fullName,
		FirstName:    name.First,
		MiddleName:   name.Middle,
		LastName:     name.Last,
		IDNumber:     ExtractIDNumber(tokens),
		DateOfBirth:  ExtractDateOfBirth(tokens),
		PlaceOfBirth: ExtractPlaceOfBirth(tokens),
		Gender:       ExtractGender(tokens),
		DateOfIssue:  ExtractDateOfIssue(tokens),
		DateOfExpiry: ExtractDateOfExpiry(tokens),
		RawText:      JoinTokens(tokens),
	}
}

// Detect classifies a token stream and extracts the fields of the detected
// document. A stream that cannot be classified still yields every field the
// extractors recover, typed Unknown.
func Detect(tokens []string) Record {
	switch {
	case nationalIDKeywords.anyIn(tokens):
		slog.Debug("detected national id keywords", "tokens", len(tokens))
		return nationalID(tokens)
	case passportKeywords.anyIn(tokens):
		if number := ExtractPassportNumber(tokens); number != "" {
			return passport(number)
		}
	}

	if ExtractIDNumber(tokens) != "" {
		slog.Debug("detected national id number without keywords")
		return nationalID(tokens)
	}
	if number := ExtractPassportNumber(tokens); number != "" {
		return passport(number)
	}

	record := ExtractAllDetails(tokens)
	record.DocumentType = Unknown
	return record
}

func nationalID(tokens []string) Record {
	record := ExtractAllDetails(tokens)
	record.DocumentType = NationalID
	if record.IDNumber != "" {
		record.CardColor, record.HolderType = ClassifyID(record.IDNumber)
	} else {
		record.CardColor, record.HolderType = ColorUnknown, HolderUnknown
	}
	return record
}

func passport(number string) Record {
	return Record{DocumentType: Passport, PassportNumber: number}
}
