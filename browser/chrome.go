package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Chrome drives a headless Chrome via chromedp. One browser, one tab.
type Chrome struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewChrome starts a headless Chrome session with a hard run deadline.
func NewChrome(runTimeout time.Duration) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	ctx, cancelTimeout := context.WithTimeout(ctx, runTimeout)

	cancel := func() {
		cancelTimeout()
		cancelCtx()
		cancelAlloc()
	}

	// Force the browser process up now so a broken Chrome install fails the
	// run at startup instead of on the first page load.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &Chrome{ctx: ctx, cancel: cancel}, nil
}

func (c *Chrome) Navigate(url string) error {
	return chromedp.Run(c.ctx, chromedp.Navigate(url))
}

func (c *Chrome) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (c *Chrome) Click(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (c *Chrome) SendKeys(selector, value string) error {
	return chromedp.Run(c.ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (c *Chrome) Evaluate(expr string, out interface{}) error {
	return chromedp.Run(c.ctx, chromedp.Evaluate(expr, out))
}

func (c *Chrome) Screenshot(path string) error {
	var buf []byte
	if err := chromedp.Run(c.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}

func (c *Chrome) Close() {
	c.cancel()
}
