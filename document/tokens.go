package document

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Shapes shared by the extractors. Every pattern is matched with a search,
// never a full match, so labels glued to a value still count.
var (
	dashedIDPattern   = regexp.MustCompile(`\b\d{2}-\d{6}\b`)
	bareIDPattern     = regexp.MustCompile(`\b\d{8,12}\b`)
	passportPattern   = regexp.MustCompile(`\b[A-Z0-9]{6,9}\b`)
	datePattern       = regexp.MustCompile(`\b\d{2}-\d{2}-\d{4}\b|\b\d{8}\b`)
	digitPattern      = regexp.MustCompile(`\d`)
	idNumberPatterns  = []*regexp.Regexp{dashedIDPattern, bareIDPattern}
	validIDPrefixes   = []string{"00", "01", "30", "31", "50", "51"}
	dateLookAhead     = 3
	minCapturedLength = 3
)

// keywords is an upper-case vocabulary matched against folded tokens.
type keywords []string

var (
	nationalIDKeywords = keywords{
		"KAD PENGENALAN", "PENGENALAN", "NEGARA BRUNEI", "JANTINA",
		"TARIKH LAHIR", "DIKELUARKAN", "MANSUH", "ALAMAT",
	}
	passportKeywords = keywords{"PASSPORT", "PASPORT"}

	passportExclusions = map[string]bool{
		"NEGARA": true, "KAD": true, "PENGENALAN": true, "NAMA": true,
		"JANTINA": true, "TARIKH": true, "LAHIR": true, "WARGANEGARA": true,
		"BRUNEI": true, "DARUSSALAM": true, "LELAKI": true, "PEREMPUAN": true,
		"TEMPAT": true, "NEGERI": true, "BANGSA": true,
		// label words of the passport data page itself
		"PASSPORT": true, "PASPORT": true,
	}

	nameLabels      = keywords{"NAMA", "NAME"}
	nameTerminators = keywords{
		"JANTINA", "TARIKH", "LAHIR", "TEMPAT", "NEGERI", "WARGANEGARA",
		"GENDER", "DATE", "MUKIM", "ALAMAT",
	}
	structuralLabels = keywords{"KAD", "PENGENALAN", "NEGARA", "BRUNEI", "DARUSSALAM", "NAMA"}

	birthDateLabels = keywords{"TARIKH LAHIR", "TARIKH", "DATE OF BIRTH"}
	issueAnchors    = keywords{"DIKELUARKAN", "ISSUE"}
	expiryAnchors   = keywords{"MANSUH", "EXPIRY"}

	birthplaceStops = keywords{"WARGANEGARA", "KAD", "PENGENALAN", "JANTINA", "TARIKH", "BANGSA", "ALAMAT"}

	genders = map[string]string{
		"LELAKI":    "Male",
		"PEREMPUAN": "Female",
		"MALE":      "Male",
		"FEMALE":    "Female",
	}
)

// fold returns the case-folded form every keyword check is made against.
// A Caser holds state, so a fresh one is built per call.
func fold(token string) string {
	return cases.Upper(language.Und).String(token)
}

// in reports whether the folded token contains any of the keywords.
func (k keywords) in(token string) bool {
	folded := fold(token)
	for _, kw := range k {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// is reports whether the folded token equals one of the keywords.
func (k keywords) is(token string) bool {
	folded := fold(token)
	for _, kw := range k {
		if folded == kw {
			return true
		}
	}
	return false
}

// anyIn reports whether any token of the stream contains one of the keywords.
func (k keywords) anyIn(tokens []string) bool {
	for _, t := range tokens {
		if k.in(t) {
			return true
		}
	}
	return false
}

func isDateShaped(token string) bool {
	return datePattern.MatchString(token)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') {
			return true
		}
	}
	return false
}

// longEnough reports whether a token is long enough to be part of a name or
// place. Lengths are counted in runes.
func longEnough(token string) bool {
	return utf8.RuneCountInString(token) >= minCapturedLength
}

// JoinTokens is the raw text representation of a token stream.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
