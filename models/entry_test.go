package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateWindowContainsInclusive(t *testing.T) {
	start := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 21, 3, 0, 0, 0, time.UTC)
	w := NewDateWindow(start, end)

	require.True(t, w.Contains(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)))
	require.True(t, w.Contains(time.Date(2026, 2, 21, 23, 59, 0, 0, time.UTC)))
	require.False(t, w.Contains(time.Date(2026, 2, 13, 23, 59, 0, 0, time.UTC)))
	require.False(t, w.Contains(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)))
}

func TestDateWindowDays(t *testing.T) {
	d0 := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	w := NewDateWindow(d0, d0.AddDate(0, 0, 1))
	days := w.Days()
	require.Len(t, days, 2)
	require.Equal(t, d0, days[0])
	require.Equal(t, d0.AddDate(0, 0, 1), days[1])
}
