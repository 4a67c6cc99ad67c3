package document

import (
	"strings"
)

// ExtractIDNumber returns the first ID number carrying a known holder prefix.
// Within a token the dashed shape is tried before the bare digit run.
func ExtractIDNumber(tokens []string) string {
	for _, token := range tokens {
		clean := strings.TrimSpace(strings.ReplaceAll(token, " ", ""))
		for _, pattern := range idNumberPatterns {
			match := pattern.FindString(clean)
			if match != "" && hasValidPrefix(match) {
				return match
			}
		}
	}
	return ""
}

func hasValidPrefix(id string) bool {
	for _, prefix := range validIDPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// ExtractPassportNumber returns the first alphanumeric run that is neither a
// label word nor purely numeric.
func ExtractPassportNumber(tokens []string) string {
	for _, token := range tokens {
		match := passportPattern.FindString(token)
		if match == "" || passportExclusions[match] || !hasLetter(match) {
			continue
		}
		return match
	}
	return ""
}

// ExtractDateOfBirth looks for a date shortly after a birth date label and
// otherwise returns the first date-shaped token of the stream, whatever
// field it belongs to.
func ExtractDateOfBirth(tokens []string) string {
	for i, token := range tokens {
		if !birthDateLabels.is(token) {
			continue
		}
		if date := dateAfter(tokens, i); date != "" {
			return date
		}
	}
	for _, token := range tokens {
		if isDateShaped(token) {
			return token
		}
	}
	return ""
}

// ExtractDateOfIssue returns the date following an issue anchor.
func ExtractDateOfIssue(tokens []string) string {
	return anchoredDate(tokens, issueAnchors)
}

// ExtractDateOfExpiry returns the date following an expiry anchor.
func ExtractDateOfExpiry(tokens []string) string {
	return anchoredDate(tokens, expiryAnchors)
}

// anchoredDate has no unlabeled fallback. An anchor without a date in its
// window does not stop the scan for a later anchor.
func anchoredDate(tokens []string, anchors keywords) string {
	for i, token := range tokens {
		if !anchors.in(token) {
			continue
		}
		if date := dateAfter(tokens, i); date != "" {
			return date
		}
	}
	return ""
}

// dateAfter returns the first date-shaped token within the look-ahead window
// following position i.
func dateAfter(tokens []string, i int) string {
	end := min(i+1+dateLookAhead, len(tokens))
	for j := i + 1; j < end; j++ {
		if isDateShaped(tokens[j]) {
			return tokens[j]
		}
	}
	return ""
}

// ExtractGender maps the first whole-token gender word to Male or Female.
func ExtractGender(tokens []string) string {
	for _, token := range tokens {
		if gender, ok := genders[fold(strings.TrimSpace(token))]; ok {
			return gender
		}
	}
	return ""
}

// ExtractPlaceOfBirth collects the tokens following a birthplace label until
// another field label shows up.
func ExtractPlaceOfBirth(tokens []string) string {
	var parts []string
	capturing := false
	for _, token := range tokens {
		if capturing && birthplaceStops.in(token) {
			break
		}
		folded := fold(token)
		if strings.Contains(folded, "TARIKH") {
			continue
		}
		if strings.Contains(folded, "TEMPAT") ||
			(strings.Contains(folded, "NEGERI") && strings.Contains(folded, "LAHIR")) {
			capturing = true
			continue
		}
		if !capturing || isDateShaped(token) {
			continue
		}
		if longEnough(token) && folded != "NEGARA" {
			parts = append(parts, token)
		}
	}
	return strings.Join(parts, " ")
}
