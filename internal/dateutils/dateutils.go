// Package dateutils provides date parsing helpers for bureau report data.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutCompact = "20060102"
	DateLayoutISO     = "2006-01-02"
	DateLayoutIndian  = "02-01-2006"
	DateLayoutFull    = "2006-01-02 15:04:05"
)

// compactSentinelPrefix marks the year the bureau uses to encode "no date".
// The canonical sentinel value is 00010201, but any 0001 year means absent.
const compactSentinelPrefix = "0001"

// CommonFormats is the list of formats tried when parsing free-form dates
// found in legacy report shapes.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutCompact,
	DateLayoutIndian,
	DateLayoutFull,
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and normalizes whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespaceRe.ReplaceAllString(dateStr, " ")
}

// ParseCompact decodes the bureau's fixed-width YYYYMMDD date encoding.
// It returns nil for anything that is not exactly 8 characters and for the
// 0001-year sentinel the bureau uses for "not present".
func ParseCompact(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) != 8 {
		return nil
	}
	if strings.HasPrefix(dateStr, compactSentinelPrefix) {
		return nil
	}
	t, err := time.Parse(DateLayoutCompact, dateStr)
	if err != nil {
		return nil
	}
	return &t
}

// ParseFlexible attempts to parse a date string using multiple common formats.
// Returns an error only when no format matches; an empty input is reported
// as an error as well so callers can treat it as absent.
func ParseFlexible(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
