package galop

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"galop-watch/models"
	"galop-watch/services"
)

// Sentinel defaults for detail fields that could not be recovered. The race
// detail markup is not under our control, so every extraction is best-effort
// and an absent field never discards the entry.
const (
	unknownNumber   = "?"
	unknownPostTime = "00:00"
)

var (
	raceNumberRegex = regexp.MustCompile(`^\s*(\d+)`)
	postTimeRegex   = regexp.MustCompile(`(\d{1,2})\s*[h:]\s*(\d{2})`)
	digitsRegex     = regexp.MustCompile(`\d+`)
)

// headerFields holds whatever could be parsed out of the race header
// paragraph. Empty string means "not found"; the caller applies defaults.
type headerFields struct {
	raceNumber string
	postTime   string
	track      string
}

// enrich completes a candidate from its race detail page. It never fails:
// every field degrades to its sentinel independently, and the entry is
// always returned.
func (s *Scraper) enrich(cand models.CandidateEntry) models.EnrichedEntry {
	entry := models.EnrichedEntry{
		CandidateEntry: cand,
		PostTime:       unknownPostTime,
		RaceNumber:     unknownNumber,
		StartNumber:    unknownNumber,
	}

	if err := s.drv.Navigate(cand.RaceURL); err != nil {
		s.log.Warn("Race page unreachable, keeping placeholders: %v", err)
		return entry
	}
	s.pacer.Wait()
	// Bounded presence wait on top of the settle delay; a timeout here just
	// means the extractions below work with whatever rendered.
	if err := s.drv.WaitVisible(s.cfg.Selectors.StartTable[0], s.waitTimeout()); err != nil {
		s.log.Debug("Start table wait timed out: %v", err)
	}

	// Header paragraph and start table are independent steps; a miss on one
	// must not abort the other.
	if header, ok := s.findHeaderParagraph(); ok {
		fields := parseHeader(header)
		if fields.raceNumber != "" {
			entry.RaceNumber = fields.raceNumber
		}
		if fields.postTime != "" {
			entry.PostTime = fields.postTime
		}
		entry.Track = fields.track
	} else {
		s.log.Debug("No race header paragraph on %s", cand.RaceURL)
	}

	if num, ok := s.findStartNumber(cand.SearchKey); ok {
		entry.StartNumber = num
	} else {
		s.log.Debug("Horse %q not found in start table", cand.SearchKey)
	}

	return entry
}

// findHeaderParagraph tries each header strategy and picks the paragraph
// carrying the current-year token and a parenthesis, the marker of the
// "race index, date/time, track" line.
func (s *Scraper) findHeaderParagraph() (string, bool) {
	year := strconv.Itoa(s.now().Year())

	for _, strategy := range s.cfg.Selectors.DetailHeader {
		js := fmt.Sprintf(`
			(function() {
				var out = [];
				document.querySelectorAll(%q).forEach(function(p) {
					out.push(p.innerText.trim());
				});
				return out;
			})()`, strategy)

		var paragraphs []string
		if err := s.drv.Evaluate(js, &paragraphs); err != nil {
			s.log.Debug("Header strategy %q failed: %v", strategy, err)
			continue
		}
		for _, p := range paragraphs {
			if strings.Contains(p, year) && strings.Contains(p, "(") {
				return p, true
			}
		}
	}
	return "", false
}

// parseHeader extracts the race number, post time, and track from the raw
// header paragraph. Each piece is independent; any of them may be missing.
// The paragraph is parsed before normalization because the track sits after
// the final comma, a character normalization strips.
func parseHeader(raw string) headerFields {
	var f headerFields

	if m := raceNumberRegex.FindStringSubmatch(raw); m != nil {
		f.raceNumber = m[1]
	}
	if m := postTimeRegex.FindStringSubmatch(raw); m != nil {
		hour, errH := strconv.Atoi(m[1])
		min, errM := strconv.Atoi(m[2])
		if errH == nil && errM == nil && hour < 24 && min < 60 {
			f.postTime = fmt.Sprintf("%02d:%02d", hour, min)
		}
	}
	if idx := strings.LastIndex(raw, ","); idx != -1 {
		f.track = services.CleanText(raw[idx+1:])
	}
	return f
}

// findStartNumber searches the start table for a row naming the horse
// (case-insensitive prefix match via the search key) and returns the digits
// of that row's first cell.
func (s *Scraper) findStartNumber(searchKey string) (string, bool) {
	if searchKey == "" {
		return "", false
	}

	for _, strategy := range s.cfg.Selectors.StartTable {
		js := fmt.Sprintf(`
			(function() {
				var out = [];
				document.querySelectorAll(%q).forEach(function(tr) {
					var cells = [];
					tr.querySelectorAll('td').forEach(function(td) {
						cells.push(td.innerText.trim());
					});
					out.push({text: tr.innerText, cells: cells, raceUrl: ''});
				});
				return out;
			})()`, strategy)

		var rows []listingRow
		if err := s.drv.Evaluate(js, &rows); err != nil {
			s.log.Debug("Start table strategy %q failed: %v", strategy, err)
			continue
		}
		for _, row := range rows {
			if !strings.Contains(strings.ToLower(row.Text), searchKey) {
				continue
			}
			if len(row.Cells) == 0 {
				continue
			}
			if num := digitsRegex.FindString(row.Cells[0]); num != "" {
				return num, true
			}
		}
	}
	return "", false
}
