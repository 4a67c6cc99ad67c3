package document

import (
	"log/slog"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// NameMatchThreshold is the Jaro-Winkler similarity above which two names are
// considered the same person.
const NameMatchThreshold = 0.85

// SideCheck compares what the two faces of one card say about the holder.
// Fields are nil when one of the faces did not carry the value.
type SideCheck struct {
	IDNumberMatch  *bool
	NameSimilarity *float64
	NameMatch      *bool
}

// Consistent reports whether no comparison found a mismatch.
func (c SideCheck) Consistent() bool {
	return (c.IDNumberMatch == nil || *c.IDNumberMatch) && (c.NameMatch == nil || *c.NameMatch)
}

// CompareSides checks the ID number and name recovered from both faces. The
// records themselves are left untouched.
func CompareSides(front, back Record) SideCheck {
	var check SideCheck

	if front.IDNumber != "" && back.IDNumber != "" {
		match := front.IDNumber == back.IDNumber
		check.IDNumberMatch = &match
	}

	if front.FullName != "" && back.FullName != "" {
		similarity := strutil.Similarity(
			strings.ToUpper(front.FullName),
			strings.ToUpper(back.FullName),
			metrics.NewJaroWinkler(),
		)
		match := similarity >= NameMatchThreshold
		check.NameSimilarity = &similarity
		check.NameMatch = &match
	}

	if !check.Consistent() {
		slog.Warn("front and back of card disagree",
			"id_number_match", check.IDNumberMatch != nil && *check.IDNumberMatch,
			"name_match", check.NameMatch != nil && *check.NameMatch)
	}
	return check
}
