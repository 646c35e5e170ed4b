// Package browser wraps the browser-automation driver behind a narrow
// interface so the scraping pipeline never depends on a specific engine and
// tests can substitute a fake.
package browser

import "time"

// Driver is the capability set the pipeline needs from a browser session.
// One driver serves a whole run, strictly sequentially. Selectors are plain
// CSS and come from configuration, not from this package.
type Driver interface {
	// Navigate loads a page and returns once the navigation committed.
	Navigate(url string) error
	// WaitVisible blocks until the selector matches a visible element or the
	// timeout elapses.
	WaitVisible(selector string, timeout time.Duration) error
	// Click clicks the first element matching the selector, waiting up to
	// timeout for it to appear.
	Click(selector string, timeout time.Duration) error
	// SendKeys types a value into the first element matching the selector.
	SendKeys(selector, value string) error
	// Evaluate runs a JS expression in the page and unmarshals its JSON
	// result into out. Pass a nil out to discard the result.
	Evaluate(expr string, out interface{}) error
	// Screenshot captures the current viewport to a PNG file.
	Screenshot(path string) error
	// Close tears the browser session down.
	Close()
}
