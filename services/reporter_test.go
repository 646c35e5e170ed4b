package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"galop-watch/models"
)

func entryFor(day time.Time, horse string) models.EnrichedEntry {
	return models.EnrichedEntry{
		CandidateEntry: models.CandidateEntry{
			TargetDate: day,
			HorseName:  horse,
			Trainer:    "J. Martin",
		},
		PostTime:    "14:30",
		Track:       "Chantilly",
		RaceNumber:  "3",
		StartNumber: "7",
	}
}

func TestAssembleDailyPartition(t *testing.T) {
	today := time.Date(2026, 2, 21, 9, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	report := AssembleDaily([]models.EnrichedEntry{
		entryFor(today, "REX"),
		entryFor(tomorrow, "LUNA"),
		entryFor(today, "ORION"),
	}, today)

	require.Len(t, report.Today, 2)
	require.Len(t, report.Later, 1)
	require.Contains(t, report.Today[0], "REX")
	require.Contains(t, report.Today[1], "ORION")
	require.Contains(t, report.Later[0], "LUNA")
	require.False(t, report.Empty())
}

func TestFormatEntryLine(t *testing.T) {
	line := FormatEntryLine(entryFor(time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC), "REX"))
	require.Equal(t, "21/02/2026 / Chantilly / 14:30 / R3 / No.7 / REX (J. Martin)", line)
}

func TestFormatDailyIncludesLaterSection(t *testing.T) {
	today := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	body := FormatDaily(models.DailyReport{
		Today: []string{"line-a"},
		Later: []string{"line-b"},
	}, today)
	require.Contains(t, body, "21/02/2026")
	require.Contains(t, body, "line-a")
	require.Contains(t, body, "Upcoming runners")
	require.Contains(t, body, "line-b")

	bodyNoLater := FormatDaily(models.DailyReport{Today: []string{"line-a"}}, today)
	require.NotContains(t, bodyNoLater, "Upcoming runners")
}

func perfOn(day time.Time, horse, place string) models.Performance {
	return models.Performance{
		Trainer:  "J. Martin",
		Horse:    horse,
		RaceName: "Prix du Test",
		Date:     day,
		Place:    place,
		Prize:    "12000 €",
		Odds:     "5.2",
	}
}

func TestFilterByRankWindowBounds(t *testing.T) {
	today := time.Date(2026, 2, 21, 15, 30, 0, 0, time.UTC)
	window := models.NewDateWindow(today.AddDate(0, 0, -7), today)

	boundary := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC) // exactly today-7
	tooOld := boundary.AddDate(0, 0, -1)                     // today-8

	lines := FilterByRank([]models.Performance{
		perfOn(boundary, "REX", "1"),
		perfOn(tooOld, "LUNA", "1"),
		perfOn(today, "ORION", "2e"),
	}, window)

	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "REX")
	require.Contains(t, lines[0], "1e")
	require.Contains(t, lines[1], "ORION")
	require.Contains(t, lines[1], "2e")
}

func TestFilterByRankRejectsAnnotations(t *testing.T) {
	today := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	window := models.NewDateWindow(today.AddDate(0, 0, -7), today)

	lines := FilterByRank([]models.Performance{
		perfOn(today, "A", "AR"),
		perfOn(today, "B", "14"),
		perfOn(today, "C", "4"),
	}, window)

	require.Len(t, lines, 1)
	require.Contains(t, lines[0], " C ")
	require.Contains(t, lines[0], "4e")
}

func TestFilterByRankBlankCellsGetPlaceholder(t *testing.T) {
	today := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)
	window := models.NewDateWindow(today.AddDate(0, 0, -7), today)

	p := perfOn(today, "REX", "1")
	p.Prize = ""
	p.Odds = ""

	lines := FilterByRank([]models.Performance{p}, window)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "1e - N/A - N/A")
}

func TestFormatHistory(t *testing.T) {
	body := FormatHistory([]string{"one", "two"})
	require.True(t, strings.Contains(body, "one\ntwo"))
	require.Contains(t, body, "last 7 days")
}
