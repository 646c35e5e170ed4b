// Package galop implements the scraping pipeline against the racing
// federation site: one authenticated browser session, a scan of each
// configured trainer page for rows inside the run's date window, and a
// best-effort enrichment of every match from its race detail page.
package galop

import (
	"fmt"
	"time"

	"galop-watch/browser"
	"galop-watch/config"
	"galop-watch/models"
	"galop-watch/utils"
)

// SeenStore is an optional cross-run dedup store. A nil store limits dedup
// to the current run.
type SeenStore interface {
	// MarkSeen records a race URL for a calendar day and reports whether it
	// was new.
	MarkSeen(raceURL string, day time.Time) (bool, error)
}

// Scraper drives the whole extraction pipeline over a single browser session.
// Not safe for concurrent use; the site tolerates one session per account.
type Scraper struct {
	cfg   *config.Config
	drv   browser.Driver
	log   *utils.Logger
	pacer *utils.Pacer
	seen  *utils.SeenSet
	store SeenStore
	now   func() time.Time
}

// NewScraper wires the pipeline. store may be nil.
func NewScraper(cfg *config.Config, drv browser.Driver, logger *utils.Logger, store SeenStore) *Scraper {
	return &Scraper{
		cfg:   cfg,
		drv:   drv,
		log:   logger,
		pacer: utils.NewPacer(cfg.PageSettleMs),
		seen:  utils.NewSeenSet(),
		store: store,
		now:   time.Now,
	}
}

func (s *Scraper) waitTimeout() time.Duration {
	return time.Duration(s.cfg.WaitTimeoutSec) * time.Second
}

// CollectEntries scans every trainer page for rows inside the window and
// enriches each candidate from its race detail page. A failing trainer page
// is skipped; the run only fails when no trainer page could be read at all.
func (s *Scraper) CollectEntries(window models.DateWindow) ([]models.EnrichedEntry, error) {
	var entries []models.EnrichedEntry
	failures := 0

	for _, url := range s.cfg.TrainerURLs {
		s.log.Info("Scanning trainer page: %s", url)
		candidates, err := s.scanTrainer(url, window)
		if err != nil {
			s.log.Error("Trainer page failed, skipping: %v", err)
			failures++
			continue
		}
		s.log.Info("  %d candidate(s) in window", len(candidates))

		for _, cand := range candidates {
			entry := s.enrich(cand)
			entries = append(entries, entry)
			s.log.Info("  Found: %s", cand.HorseName)
		}
	}

	if failures == len(s.cfg.TrainerURLs) {
		return nil, fmt.Errorf("all %d trainer pages failed", failures)
	}
	return entries, nil
}

// CollectPerformances scans every trainer's past-race rows. Window and rank
// filtering happen downstream in the report stage.
func (s *Scraper) CollectPerformances() ([]models.Performance, error) {
	var perfs []models.Performance
	failures := 0

	for _, url := range s.cfg.TrainerURLs {
		s.log.Info("Scanning trainer history: %s", url)
		found, err := s.scanHistory(url)
		if err != nil {
			s.log.Error("Trainer page failed, skipping: %v", err)
			failures++
			continue
		}
		perfs = append(perfs, found...)
	}

	if failures == len(s.cfg.TrainerURLs) {
		return nil, fmt.Errorf("all %d trainer pages failed", failures)
	}
	return perfs, nil
}

// CaptureDebug snapshots the current page for post-mortem inspection and
// returns the file name, or "" when the capture itself failed.
func (s *Scraper) CaptureDebug(label string) string {
	name := fmt.Sprintf("debug_%s_%s.png", label, s.now().Format("20060102_150405"))
	if err := s.drv.Screenshot(name); err != nil {
		s.log.Warn("Debug screenshot failed: %v", err)
		return ""
	}
	s.log.Info("Debug screenshot written to %s", name)
	return name
}
