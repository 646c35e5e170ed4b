package utils

import "time"

// Pacer enforces the fixed settle delay after each page navigation. The
// sleep is unconditional: time spent on other work between navigations must
// not eat into the settle budget of the page just loaded.
type Pacer struct {
	delay time.Duration
}

// NewPacer creates a Pacer with the given delay in milliseconds.
func NewPacer(delayMs int) *Pacer {
	return &Pacer{delay: time.Duration(delayMs) * time.Millisecond}
}

// Wait blocks for the full settle delay.
func (p *Pacer) Wait() {
	time.Sleep(p.delay)
}
