package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"schedula/models"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+clock)
	if err != nil {
		t.Fatalf("bad clock %q: %v", clock, err)
	}
	return parsed
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"contained", "09:00", "10:00", "09:15", "09:45", true},
		{"partial left", "09:00", "10:00", "08:30", "09:30", true},
		{"partial right", "09:00", "10:00", "09:30", "10:30", true},
		{"touching at end does not overlap", "09:00", "10:00", "10:00", "11:00", false},
		{"touching at start does not overlap", "09:00", "10:00", "08:00", "09:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(t, tt.aStart), at(t, tt.aEnd), at(t, tt.bStart), at(t, tt.bEnd))
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(at(t, tt.bStart), at(t, tt.bEnd), at(t, tt.aStart), at(t, tt.aEnd)))
		})
	}
}

func TestOverlapsAny(t *testing.T) {
	intervals := []models.Interval{
		{Start: at(t, "09:00"), End: at(t, "10:00")},
		{Start: at(t, "14:00"), End: at(t, "15:00")},
	}
	assert.True(t, OverlapsAny(at(t, "09:30"), at(t, "09:45"), intervals))
	assert.True(t, OverlapsAny(at(t, "13:30"), at(t, "14:30"), intervals))
	assert.False(t, OverlapsAny(at(t, "10:00"), at(t, "14:00"), intervals))
	assert.False(t, OverlapsAny(at(t, "10:00"), at(t, "14:00"), nil))
}
