package services

import (
	"regexp"
	"strings"
	"time"

	"galop-watch/models"
)

var (
	disallowedRegex      = regexp.MustCompile(`[^a-zA-Z0-9/:. ]`)
	disallowedPrizeRegex = regexp.MustCompile(`[^a-zA-Z0-9/:.€ ]`)
	whitespaceRegex      = regexp.MustCompile(`\s+`)
	rankRegex            = regexp.MustCompile(`^([1-4])(\D.*)?$`)
	siteDateRegex        = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// CleanText strips any character outside the site's useful set (alphanumerics,
// '/', ':', '.', space) and collapses whitespace runs to single spaces.
// Empty or absent input yields an empty string, never an error. Idempotent.
func CleanText(raw string) string {
	cleaned := disallowedRegex.ReplaceAllString(raw, "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// CleanPrize is CleanText but keeps the euro sign, for prize-money cells.
func CleanPrize(raw string) string {
	cleaned := disallowedPrizeRegex.ReplaceAllString(raw, "")
	cleaned = whitespaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// ParseRank extracts a finishing position 1-4 from a place cell. The token
// must start with a single digit 1-4 that is not followed by another digit, so
// "1" and "2e" match while "14" and non-numeric annotations like "AR"
// (disqualified/withdrawn markers) are rejected. Returns "" when the cell does
// not represent a top-4 finish.
func ParseRank(place string) string {
	m := rankRegex.FindStringSubmatch(strings.TrimSpace(place))
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseSiteDate parses a DD/MM/YYYY cell. The zero time and false are
// returned for anything that does not parse.
func ParseSiteDate(raw string) (time.Time, bool) {
	t, err := time.Parse(models.SiteDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ContainsSiteDate reports whether text contains any of the window's days
// rendered in the site's DD/MM/YYYY format, and returns the first matching
// day. Used to keep listing rows belonging to the run's date window.
func ContainsSiteDate(text string, window models.DateWindow) (time.Time, bool) {
	for _, raw := range siteDateRegex.FindAllString(text, -1) {
		d, ok := ParseSiteDate(raw)
		if !ok {
			continue
		}
		if window.Contains(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// SearchKey derives the fuzzy lookup key for a horse name: normalized,
// lowercased, truncated to a short prefix so the detail page's start table
// still matches when the site renders the name with suffix annotations.
func SearchKey(horseName string) string {
	key := strings.ToLower(CleanText(horseName))
	const maxLen = 10
	if len(key) > maxLen {
		key = key[:maxLen]
	}
	return strings.TrimSpace(key)
}
