package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeenSetFirstWins(t *testing.T) {
	s := NewSeenSet()
	require.True(t, s.Add("https://example.org/course/1"))
	require.False(t, s.Add("https://example.org/course/1"))
	require.True(t, s.Add("https://example.org/course/2"))
	require.Equal(t, 2, s.Count())
}
