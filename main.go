package main

import (
	"fmt"
	"os"
	"time"

	"galop-watch/browser"
	"galop-watch/config"
	"galop-watch/models"
	"galop-watch/notify"
	"galop-watch/scraper/galop"
	"galop-watch/services"
	"galop-watch/storage"
	"galop-watch/utils"
)

func main() {
	// ================== Bootstrap ====================
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger(false).Error("Configuration error: %v", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Verbose)

	logger.Info("Race entry watcher (%s mode)", cfg.Mode)
	logger.Info("Trainers: %d | Settle delay: %dms | Wait timeout: %ds",
		len(cfg.TrainerURLs), cfg.PageSettleMs, cfg.WaitTimeoutSec)

	// ================== Browser ======================
	drv, err := browser.NewChrome(time.Duration(cfg.RunTimeoutMin) * time.Minute)
	if err != nil {
		logger.Error("Cannot start browser: %v", err)
		os.Exit(1)
	}
	defer drv.Close()

	// ========= Optional cross-run dedup store ========
	var store galop.SeenStore
	if cfg.DatabaseURL != "" {
		st, err := storage.NewSeenStore(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Warn("Seen store disabled: %v", err)
		} else {
			defer st.Close()
			store = st
		}
	}

	// ================== Session ======================
	sc := galop.NewScraper(cfg, drv, logger, store)
	if err := sc.Login(); err != nil {
		logger.Error("Login failed: %v", err)
		sc.CaptureDebug("login")
		os.Exit(1)
	}

	// ================== Pipeline =====================
	now := time.Now()
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort,
		cfg.EmailSender, cfg.MailPassword, cfg.EmailRecipient)

	var subject, body string
	switch cfg.Mode {
	case config.RunModeEntries:
		end := now
		if cfg.IncludeTomorrow {
			end = now.AddDate(0, 0, 1)
		}
		window := models.NewDateWindow(now, end)

		entries, err := sc.CollectEntries(window)
		if err != nil {
			logger.Error("Scan failed: %v", err)
			sc.CaptureDebug("scan")
			os.Exit(1)
		}
		if len(entries) == 0 {
			logger.Info("No horses running in the window. Done.")
			return
		}

		report := services.AssembleDaily(entries, now)
		subject = fmt.Sprintf("Runners of the day - %s", now.Format(models.SiteDateLayout))
		body = services.FormatDaily(report, now)

	case config.RunModeResults:
		window := models.NewDateWindow(now.AddDate(0, 0, -cfg.HistoryDays), now)

		perfs, err := sc.CollectPerformances()
		if err != nil {
			logger.Error("Scan failed: %v", err)
			sc.CaptureDebug("scan")
			os.Exit(1)
		}
		lines := services.FilterByRank(perfs, window)
		if len(lines) == 0 {
			logger.Info("No top-4 finishes in the last %d days. Done.", cfg.HistoryDays)
			return
		}

		subject = fmt.Sprintf("Top finishes, last %d days - %s",
			cfg.HistoryDays, now.Format(models.SiteDateLayout))
		body = services.FormatHistory(lines)
	}

	// ================== Notify =======================
	// Extraction succeeded; a delivery failure is logged but does not fail
	// the run.
	notify.Deliver(mailer, logger, cfg.EmailRecipient, subject, body)
}
