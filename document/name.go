package document

import (
	"strings"
)

// Name is a full name decomposed into its parts. Parts are empty when absent.
type Name struct {
	First  string
	Middle string
	Last   string
}

// ExtractFullName captures the tokens following a NAMA/NAME label. Cards whose
// label was not recognised fall back to the tokens following the ID number.
func ExtractFullName(tokens []string) string {
	id := ExtractIDNumber(tokens)

	start, capturing := 0, false
	if !nameLabels.anyIn(tokens) && id != "" {
		for i, token := range tokens {
			if strings.Contains(token, id) {
				start, capturing = i+1, true
				break
			}
		}
		if !capturing {
			return ""
		}
	}

	var parts []string
	for _, token := range tokens[start:] {
		if !capturing {
			if nameLabels.is(token) || strings.Contains(fold(token), "NAMA") {
				capturing = true
			}
			continue
		}
		if nameTerminators.in(token) {
			break
		}
		if acceptNamePart(token, id) {
			parts = append(parts, strings.TrimSpace(token))
		}
	}
	return strings.Join(parts, " ")
}

func acceptNamePart(token, id string) bool {
	if !longEnough(token) || structuralLabels.in(token) {
		return false
	}
	if id != "" && strings.Contains(id, strings.ReplaceAll(token, " ", "")) {
		return false
	}
	return !digitPattern.MatchString(token)
}

// SplitName splits a full name on whitespace. Two parts are first and last
// name, anything between the first and the last part is the middle name.
func SplitName(fullName string) Name {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return Name{}
	case 1:
		return Name{First: parts[0]}
	case 2:
		return Name{First: parts[0], Last: parts[1]}
	default:
		return Name{
			First:  parts[0],
			Middle: strings.Join(parts[1:len(parts)-1], " "),
			Last:   parts[len(parts)-1],
		}
	}
}
