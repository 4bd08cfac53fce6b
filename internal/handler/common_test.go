package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	for in, want := range map[string]string{
		"2025-03-15":   "2025-03-15",
		" 2025-03-15 ": "2025-03-15",
	} {
		got, ok := normalizeDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "15/03/2025", "2025-13-01", "march"} {
		_, ok := normalizeDate(in)
		assert.False(t, ok, in)
	}
}

func TestNormalizeTime(t *testing.T) {
	for in, want := range map[string]string{
		"10:00":    "10:00:00",
		"10:00:00": "10:00:00",
		"09:30":    "09:30:00",
	} {
		got, ok := normalizeTime(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "25:00", "noon", "10"} {
		_, ok := normalizeTime(in)
		assert.False(t, ok, in)
	}
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "10:00", clockTime("10:00:00"))
	assert.Equal(t, "oddball", clockTime("oddball")) // passed through untouched
}
