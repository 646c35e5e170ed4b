package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application-level configuration. It is built once at
// startup and passed into each component; nothing reads the environment
// after Load returns.
type Config struct {
	// Site
	LoginURL    string
	TrainerURLs []string

	// Secrets (all required)
	SitePassword   string // federation account password
	MailPassword   string // SMTP app password
	EmailSender    string // also the federation login name
	EmailRecipient string

	// Mail transport
	SMTPHost string
	SMTPPort int

	// Run behavior
	Mode            string // "entries" (today's runners) or "results" (7-day top finishes)
	IncludeTomorrow bool   // entries mode: widen the window to {today, tomorrow}
	HistoryDays     int    // results mode: trailing window size

	// Timing
	PageSettleMs   int // fixed settle delay after each navigation
	WaitTimeoutSec int // upper bound for element waits and the login check
	RunTimeoutMin  int // hard deadline for the whole browser session

	// Optional cross-run dedup store; empty disables it
	DatabaseURL string

	Verbose   bool
	Selectors Selectors
}

// Selectors keeps every CSS selector the pipeline uses as data, so a site
// layout change is a configuration edit rather than a code change. The slice
// fields are ordered fallback strategies tried until one yields elements.
type Selectors struct {
	CookieConsent string
	LoginName     string
	LoginPass     string
	LoginSubmit   string
	LoggedInBody  string
	AccountMenu   string
	RaceLink      string

	ListingRows  []string
	DetailHeader []string
	StartTable   []string
}

// RunModeEntries and RunModeResults are the two pipeline modes.
const (
	RunModeEntries = "entries"
	RunModeResults = "results"
)

// Load reads configuration from environment variables. Missing required
// secrets make it fail with an error naming every absent variable.
func Load() (*Config, error) {
	cfg := &Config{
		LoginURL:       getEnv("SITE_LOGIN_URL", "https://www.france-galop.com/fr/login"),
		TrainerURLs:    splitList(os.Getenv("TRAINER_URLS")),
		SitePassword:   os.Getenv("SITE_PASSWORD"),
		MailPassword:   os.Getenv("MAIL_APP_PASSWORD"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),
		EmailRecipient: os.Getenv("EMAIL_RECIPIENT"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),

		Mode:            getEnv("RUN_MODE", RunModeEntries),
		IncludeTomorrow: getEnvBool("INCLUDE_TOMORROW", false),
		HistoryDays:     getEnvInt("HISTORY_DAYS", 7),

		PageSettleMs:   getEnvInt("PAGE_SETTLE_MS", 5000),
		WaitTimeoutSec: getEnvInt("WAIT_TIMEOUT_SEC", 20),
		RunTimeoutMin:  getEnvInt("RUN_TIMEOUT_MIN", 20),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		Verbose:     getEnvBool("VERBOSE", false),

		Selectors: DefaultSelectors(),
	}

	var missing []string
	if cfg.SitePassword == "" {
		missing = append(missing, "SITE_PASSWORD")
	}
	if cfg.MailPassword == "" {
		missing = append(missing, "MAIL_APP_PASSWORD")
	}
	if cfg.EmailSender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if cfg.EmailRecipient == "" {
		missing = append(missing, "EMAIL_RECIPIENT")
	}
	if len(cfg.TrainerURLs) == 0 {
		missing = append(missing, "TRAINER_URLS")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s",
			strings.Join(missing, ", "))
	}

	if cfg.Mode != RunModeEntries && cfg.Mode != RunModeResults {
		return nil, fmt.Errorf("RUN_MODE must be %q or %q, got %q",
			RunModeEntries, RunModeResults, cfg.Mode)
	}

	return cfg, nil
}

// DefaultSelectors returns the selector set known to work against the
// current site layout.
func DefaultSelectors() Selectors {
	return Selectors{
		CookieConsent: "#onetrust-accept-btn-handler",
		LoginName:     "#user-login-form input[name='name']",
		LoginPass:     "#user-login-form input[name='pass']",
		LoginSubmit:   "#user-login-form button[type='submit']",
		LoggedInBody:  "body.user-logged-in",
		AccountMenu:   ".account-menu, #block-usermenu",
		RaceLink:      "a[href*='/course/']",

		ListingRows: []string{
			"table.views-table tbody tr",
			".last-races-table tbody tr",
			"table tbody tr",
		},
		DetailHeader: []string{
			".course-header p",
			"article header p",
			".view-header p",
		},
		StartTable: []string{
			"table.views-table tbody tr",
			".partants tbody tr",
			"table tbody tr",
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
