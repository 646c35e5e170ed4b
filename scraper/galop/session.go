package galop

import (
	"errors"
	"fmt"
	"time"
)

// ErrAuthenticationFailed is returned when the post-login indicator never
// appears. It is deliberately distinct from "zero rows matched": scraping the
// members-only pages without a session silently yields empty tables, so an
// unverified login must abort the run instead.
var ErrAuthenticationFailed = errors.New("authentication could not be verified")

const loginPollInterval = 500 * time.Millisecond

// Login authenticates the browser session against the site and positively
// verifies the session before returning.
func (s *Scraper) Login() error {
	sel := s.cfg.Selectors

	s.log.Info("Logging in via %s", s.cfg.LoginURL)
	if err := s.drv.Navigate(s.cfg.LoginURL); err != nil {
		return fmt.Errorf("login page navigation failed: %w", err)
	}
	s.pacer.Wait()

	// Consent banner only shows on fresh profiles; its absence is fine.
	if err := s.drv.Click(sel.CookieConsent, 3*time.Second); err != nil {
		s.log.Debug("No cookie consent banner: %v", err)
	} else {
		s.log.Debug("Cookie consent dismissed")
	}

	if err := s.drv.WaitVisible(sel.LoginName, s.waitTimeout()); err != nil {
		return fmt.Errorf("login form did not appear: %w", err)
	}
	if err := s.drv.SendKeys(sel.LoginName, s.cfg.EmailSender); err != nil {
		return fmt.Errorf("filling login name failed: %w", err)
	}
	if err := s.drv.SendKeys(sel.LoginPass, s.cfg.SitePassword); err != nil {
		return fmt.Errorf("filling password failed: %w", err)
	}

	// JS click; the submit button is sometimes covered by a sticky header.
	click := fmt.Sprintf("document.querySelector(%q).click()", sel.LoginSubmit)
	if err := s.drv.Evaluate(click, nil); err != nil {
		return fmt.Errorf("submitting login form failed: %w", err)
	}

	if !s.pollLoggedIn() {
		return ErrAuthenticationFailed
	}
	s.log.Info("Session established")
	return nil
}

// pollLoggedIn polls for the logged-in indicator (logged-in body class plus
// the account menu) until it appears or the wait timeout elapses.
func (s *Scraper) pollLoggedIn() bool {
	sel := s.cfg.Selectors
	check := fmt.Sprintf(
		"document.querySelector(%q) !== null && document.querySelector(%q) !== null",
		sel.LoggedInBody, sel.AccountMenu,
	)

	attempts := int(s.waitTimeout() / loginPollInterval)
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		var ok bool
		if err := s.drv.Evaluate(check, &ok); err != nil {
			s.log.Debug("Login check evaluate failed: %v", err)
		} else if ok {
			return true
		}
		time.Sleep(loginPollInterval)
	}
	return false
}
