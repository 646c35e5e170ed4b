package models

import "time"

// SiteDateLayout is the date format the federation site renders in table cells.
const SiteDateLayout = "02/01/2006"

// CandidateEntry is a coarse match extracted from one trainer listing row,
// before the race detail page has been visited. Immutable once created.
type CandidateEntry struct {
	TargetDate time.Time
	HorseName  string
	// SearchKey is a normalized lowercase prefix of the horse name, used to
	// re-find the horse in the detail page's start table even when the site
	// renders the name with suffix annotations.
	SearchKey string
	// RaceURL is the canonical race detail URL and the dedup key for the run.
	RaceURL   string
	Trainer   string
	RaceLabel string
}

// EnrichedEntry is a CandidateEntry completed with race-detail fields.
// Unrecoverable fields carry sentinel defaults instead of failing the entry.
type EnrichedEntry struct {
	CandidateEntry
	PostTime    string // "00:00" when the header paragraph was not found
	Track       string // empty when not found
	RaceNumber  string // "?" when not found
	StartNumber string // "?" when the horse was not found in the start table
}

// Performance is one past race result row from a trainer's history table.
type Performance struct {
	Trainer  string
	Horse    string
	RaceName string
	Date     time.Time
	// Place is the raw (cleaned) place cell, e.g. "1", "2e", "AR".
	Place string
	Prize string
	Odds  string
}

// DailyReport groups formatted entry lines by date bucket.
type DailyReport struct {
	Today []string
	Later []string
}

// Empty reports whether no line landed in any bucket.
func (r DailyReport) Empty() bool {
	return len(r.Today) == 0 && len(r.Later) == 0
}

// DateWindow is the finite set of calendar days a run is interested in.
// Start and End are inclusive; times are compared at day granularity.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date, each read
// in its own location. Site dates parse as UTC while "today" is local, so
// instants must never be compared directly.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// NewDateWindow builds an inclusive window covering [start, end] by day.
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{Start: Day(start), End: Day(end)}
}

// Contains reports whether t falls on a calendar day inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	k := dateKey(t)
	return k >= dateKey(w.Start) && k <= dateKey(w.End)
}

// Days lists every day in the window in order.
func (w DateWindow) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
