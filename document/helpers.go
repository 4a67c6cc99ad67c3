package document

import (
	"fmt"
	"strings"
	"time"
)

const (
	dashedDateLayout = "02-01-2006"
	bareDateLayout   = "02012006"
)

// ParseCardDate parses a date as printed on the card, either DD-MM-YYYY or
// the same digits without separators. Anything else is rejected before
// parsing.
func ParseCardDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	var layout string
	switch {
	case datePattern.FindString(dateStr) != dateStr:
	case len(dateStr) == len(dashedDateLayout) && strings.Contains(dateStr, "-"):
		layout = dashedDateLayout
	case len(dateStr) == len(bareDateLayout) && !strings.Contains(dateStr, "-"):
		layout = bareDateLayout
	}
	if layout == "" {
		return time.Time{}, fmt.Errorf("invalid date format: %s", dateStr)
	}

	parsedDate, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing date: %w", err)
	}
	return parsedDate, nil
}

// IsExpired reports whether a card with the given expiry date is expired at
// now. The card stays valid through its expiry day.
func IsExpired(expiry string, now time.Time) (bool, error) {
	expiryDate, err := ParseCardDate(expiry)
	if err != nil {
		return false, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.After(expiryDate), nil
}
