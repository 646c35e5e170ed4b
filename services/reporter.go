package services

import (
	"fmt"
	"strings"
	"time"

	"galop-watch/models"
)

// AssembleDaily folds enriched entries into per-day buckets. An entry lands in
// Today when its target date equals today, otherwise in Later; nothing else
// influences the partition.
func AssembleDaily(entries []models.EnrichedEntry, today time.Time) models.DailyReport {
	var report models.DailyReport
	for _, e := range entries {
		line := FormatEntryLine(e)
		if models.SameDay(e.TargetDate, today) {
			report.Today = append(report.Today, line)
		} else {
			report.Later = append(report.Later, line)
		}
	}
	return report
}

// FormatEntryLine renders one enriched entry as a report line.
func FormatEntryLine(e models.EnrichedEntry) string {
	return fmt.Sprintf("%s / %s / %s / R%s / No.%s / %s (%s)",
		e.TargetDate.Format(models.SiteDateLayout),
		e.Track,
		e.PostTime,
		e.RaceNumber,
		e.StartNumber,
		e.HorseName,
		e.Trainer,
	)
}

// FormatDaily renders the email body for entries mode.
func FormatDaily(report models.DailyReport, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nRunners detected for today (%s):\n\n",
		today.Format(models.SiteDateLayout))

	if len(report.Today) == 0 {
		b.WriteString("(none)\n")
	} else {
		b.WriteString(strings.Join(report.Today, "\n"))
		b.WriteString("\n")
	}

	if len(report.Later) > 0 {
		b.WriteString("\nUpcoming runners in the window:\n\n")
		b.WriteString(strings.Join(report.Later, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// FilterByRank keeps performances that finished in the top 4 inside the
// window (both bounds inclusive) and renders them as report lines. Place
// cells carrying non-numeric annotations are dropped by ParseRank.
func FilterByRank(perfs []models.Performance, window models.DateWindow) []string {
	var lines []string
	for _, p := range perfs {
		if !window.Contains(p.Date) {
			continue
		}
		rank := ParseRank(p.Place)
		if rank == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("Trainer - horse: %s - %s - %s - %s - %se - %s - %s",
			p.Trainer,
			p.Horse,
			p.Date.Format(models.SiteDateLayout),
			p.RaceName,
			rank,
			orPlaceholder(p.Prize),
			orPlaceholder(p.Odds),
		))
	}
	return lines
}

// orPlaceholder substitutes the report placeholder for cells the site left
// blank.
func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// FormatHistory renders the email body for results mode.
func FormatHistory(lines []string) string {
	return fmt.Sprintf("Horses placed in the top 4 over the last 7 days:\n\n%s\n",
		strings.Join(lines, "\n"))
}
