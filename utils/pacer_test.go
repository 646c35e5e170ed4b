package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacerSettlesUnconditionally(t *testing.T) {
	p := NewPacer(50)
	p.Wait()

	// Long work between navigations must not consume the next settle delay.
	time.Sleep(120 * time.Millisecond)

	start := time.Now()
	p.Wait()
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
