package galop

import (
	"fmt"
	"strings"
	"time"

	"galop-watch/models"
	"galop-watch/services"
)

// Listing cell positions on the trainer pages. The upcoming-runners table
// and the past-races table share a layout family but order columns
// differently.
const (
	entryCellRace  = 3
	entryCellHorse = 4

	historyCellDate  = 0
	historyCellHorse = 1
	historyCellRace  = 2
	historyCellPlace = 3
	historyCellPrize = 4
	historyCellOdds  = 5
)

// listingRow is the raw shape harvested from one <tr> by the page JS. All
// interpretation (dates, dedup, columns) happens in Go.
type listingRow struct {
	Text    string   `json:"text"`
	Cells   []string `json:"cells"`
	RaceURL string   `json:"raceUrl"`
}

// rowsJS builds the harvest expression for one selector strategy.
func (s *Scraper) rowsJS(selector string) string {
	return fmt.Sprintf(`
		(function() {
			var rows = [];
			document.querySelectorAll(%q).forEach(function(tr) {
				var cells = [];
				tr.querySelectorAll('td').forEach(function(td) {
					cells.push(td.innerText.trim());
				});
				var link = tr.querySelector(%q);
				rows.push({
					text: tr.innerText,
					cells: cells,
					raceUrl: link ? link.href : ''
				});
			});
			return rows;
		})()`, selector, s.cfg.Selectors.RaceLink)
}

// extractRows tries each row-selector strategy in order until one yields
// rows. A broken strategy falls through to the next; an error comes back
// only when every strategy failed outright. An empty result from a working
// strategy is not an error.
func (s *Scraper) extractRows(strategies []string) ([]listingRow, error) {
	var lastErr error
	succeeded := false
	for _, strategy := range strategies {
		var rows []listingRow
		if err := s.drv.Evaluate(s.rowsJS(strategy), &rows); err != nil {
			s.log.Debug("Row strategy %q failed: %v", strategy, err)
			lastErr = err
			continue
		}
		succeeded = true
		if len(rows) > 0 {
			s.log.Debug("Selector strategy %q matched %d rows", strategy, len(rows))
			return rows, nil
		}
	}
	if !succeeded && lastErr != nil {
		return nil, fmt.Errorf("row extraction failed: %w", lastErr)
	}
	return nil, nil
}

// trainerName scrapes the page h1 and strips the site's role label.
func (s *Scraper) trainerName() string {
	var raw string
	err := s.drv.Evaluate(
		`(function() { var h = document.querySelector('h1'); return h ? h.innerText : ''; })()`,
		&raw,
	)
	if err != nil || raw == "" {
		return "Unknown"
	}
	name := services.CleanText(raw)
	for _, label := range []string{"ENTRAINEUR", "TRAINER"} {
		name = strings.TrimSpace(strings.ReplaceAll(name, label, ""))
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

// scanTrainer loads one trainer page and turns its date-matching rows into
// deduplicated candidate entries. Malformed rows are skipped, never fatal.
func (s *Scraper) scanTrainer(url string, window models.DateWindow) ([]models.CandidateEntry, error) {
	if err := s.drv.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	s.pacer.Wait()
	// The runner table renders late; a miss here is fine, extraction below
	// just sees whatever is present.
	if err := s.drv.WaitVisible(s.cfg.Selectors.ListingRows[0], s.waitTimeout()); err != nil {
		s.log.Debug("Runner table wait timed out: %v", err)
	}

	trainer := s.trainerName()
	rows, err := s.extractRows(s.cfg.Selectors.ListingRows)
	if err != nil {
		return nil, err
	}

	var candidates []models.CandidateEntry
	for _, row := range rows {
		date, ok := services.ContainsSiteDate(row.Text, window)
		if !ok {
			continue
		}
		if row.RaceURL == "" {
			s.log.Debug("Row in window without race link, skipped")
			continue
		}
		if len(row.Cells) <= entryCellHorse {
			s.log.Debug("Row in window with %d cells, skipped", len(row.Cells))
			continue
		}
		if !s.markNew(row.RaceURL, date) {
			s.log.Debug("Duplicate race skipped: %s", row.RaceURL)
			continue
		}

		horse := services.CleanText(row.Cells[entryCellHorse])
		candidates = append(candidates, models.CandidateEntry{
			TargetDate: date,
			HorseName:  horse,
			SearchKey:  services.SearchKey(horse),
			RaceURL:    row.RaceURL,
			Trainer:    trainer,
			RaceLabel:  services.CleanText(row.Cells[entryCellRace]),
		})
	}
	return candidates, nil
}

// markNew records the race URL in the run-local seen set and, when a
// persisted store is configured, across runs too. First occurrence wins.
func (s *Scraper) markNew(raceURL string, date time.Time) bool {
	if !s.seen.Add(raceURL) {
		return false
	}
	if s.store == nil {
		return true
	}
	isNew, err := s.store.MarkSeen(raceURL, date)
	if err != nil {
		// The persisted store is advisory; a broken database must not block
		// the run.
		s.log.Warn("Seen store unavailable: %v", err)
		return true
	}
	if !isNew {
		s.log.Debug("Race already handled by an earlier run: %s", raceURL)
	}
	return isNew
}

// scanHistory loads one trainer page and parses its past-race rows. Rows
// whose date cell does not parse are skipped.
func (s *Scraper) scanHistory(url string) ([]models.Performance, error) {
	if err := s.drv.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	s.pacer.Wait()
	if err := s.drv.WaitVisible(s.cfg.Selectors.ListingRows[0], s.waitTimeout()); err != nil {
		s.log.Debug("History table wait timed out: %v", err)
	}

	trainer := s.trainerName()
	rows, err := s.extractRows(s.cfg.Selectors.ListingRows)
	if err != nil {
		return nil, err
	}

	var perfs []models.Performance
	for _, row := range rows {
		if len(row.Cells) <= historyCellPrize {
			continue
		}
		date, ok := services.ParseSiteDate(row.Cells[historyCellDate])
		if !ok {
			continue
		}
		odds := ""
		if len(row.Cells) > historyCellOdds {
			odds = services.CleanText(row.Cells[historyCellOdds])
		}
		perfs = append(perfs, models.Performance{
			Trainer:  trainer,
			Horse:    services.CleanText(row.Cells[historyCellHorse]),
			RaceName: services.CleanText(row.Cells[historyCellRace]),
			Date:     date,
			Place:    services.CleanText(row.Cells[historyCellPlace]),
			Prize:    services.CleanPrize(row.Cells[historyCellPrize]),
			Odds:     odds,
		})
	}
	return perfs, nil
}
