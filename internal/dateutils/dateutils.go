// Package dateutils provides common date operations used throughout the application.
//
// The normalizer deals with the date shapes found on receipts and bank
// statements: ISO dates, European day-first dates, and two-digit-year dates
// with ambiguous day/month ordering. Validation is a digit range check only
// (month 1-12, day 1-31); days-per-month is deliberately not checked, so
// "2025-02-30" normalizes successfully. This is an accepted limitation, not
// a bug: upstream sources routinely emit such dates and rejecting them would
// drop otherwise valid transactions.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateLayoutISO is the canonical output format for all normalized dates.
const DateLayoutISO = "2006-01-02"

// TwoDigitYearPivot decides the century for two-digit years:
// values >= 70 map to 19xx, values < 70 map to 20xx.
const TwoDigitYearPivot = 70

// dateTokenPattern matches a date-shaped token: three numeric components
// joined by '-', '/' or '.'.
var dateTokenPattern = regexp.MustCompile(`\b(\d{1,4})[-/.](\d{1,2})[-/.](\d{2,4})\b`)

// isoDatePattern matches an already-canonical YYYY-MM-DD string exactly.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeDate converts a heterogeneous date token into a canonical ISO
// date (YYYY-MM-DD). It accepts '-', '/' and '.' as separators and the
// following shapes:
//
//	YYYY-[M]M-[D]D           year first
//	[D]D-[M]M-YYYY           year last
//	[D]D-[M]M-YY             two-digit year, pivot-70 century resolution
//
// For the two-digit-year shape the day/month order is ambiguous; when a
// component exceeds 12 it must be the day, otherwise the first component is
// taken as the month (US-style default).
//
// The boolean is false when the token is not date-shaped or a component
// fails its range check. NormalizeDate never guesses a fallback date.
func NormalizeDate(token string) (string, bool) {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, ".", "/")
	s = strings.ReplaceAll(s, "-", "/")

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		nums[i] = n
	}

	switch {
	case len(parts[0]) == 4:
		// YYYY-[M]M-[D]D
		return formatISO(nums[0], nums[1], nums[2])
	case len(parts[2]) == 4:
		// [D]D-[M]M-YYYY
		return formatISO(nums[2], nums[1], nums[0])
	case len(parts[2]) == 2:
		// [D]D-[M]M-YY with ambiguous day/month ordering
		year := nums[2] + 2000
		if nums[2] >= TwoDigitYearPivot {
			year = nums[2] + 1900
		}
		month, day := nums[0], nums[1]
		if nums[0] > 12 {
			day, month = nums[0], nums[1]
		} else if nums[1] > 12 {
			day, month = nums[1], nums[0]
		}
		return formatISO(year, month, day)
	default:
		return "", false
	}
}

// formatISO zero-pads and range-checks a year/month/day triple.
func formatISO(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// FindFirstDate scans free text for the first date-shaped token that also
// normalizes successfully. It is used for block-level date inheritance:
// a statement line without its own date reuses the document's date.
func FindFirstDate(text string) (string, bool) {
	for _, match := range dateTokenPattern.FindAllString(text, -1) {
		if iso, ok := NormalizeDate(match); ok {
			return iso, true
		}
	}
	return "", false
}

// IsISODate reports whether the string is already an exact YYYY-MM-DD date.
func IsISODate(s string) bool {
	return isoDatePattern.MatchString(s)
}

// StripLeadingDate removes a leading date-shaped token (plus any separator
// punctuation that follows it) from a description. If the first
// whitespace-delimited word that remains is still date-shaped, that word is
// dropped too. The result keeps its surrounding whitespace trimmed.
func StripLeadingDate(s string) string {
	trimmed := strings.TrimSpace(s)

	if loc := dateTokenPattern.FindStringIndex(trimmed); loc != nil && loc[0] == 0 {
		trimmed = strings.TrimSpace(trimmed[loc[1]:])
		trimmed = strings.TrimLeft(trimmed, "-–:,. ")
		trimmed = strings.TrimSpace(trimmed)
	}

	fields := strings.Fields(trimmed)
	if len(fields) > 0 {
		if _, ok := NormalizeDate(fields[0]); ok {
			trimmed = strings.TrimSpace(strings.Join(fields[1:], " "))
		}
	}

	return trimmed
}
