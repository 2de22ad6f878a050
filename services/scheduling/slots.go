package scheduling

import (
	"time"

	"schedula/models"
)

// OverlapPolicy selects how candidate slots are tested against breaks and
// existing appointments on the read path. The legacy behavior compares slot
// starts only; the hardened behavior tests the whole slot body. Changing the
// policy changes observable availability, so both stay selectable.
type OverlapPolicy string

const (
	// OverlapStartOnly excludes a candidate only when its start instant
	// falls inside a break, or exactly equals an existing appointment's
	// start. A slot whose body overlaps but whose start precedes the
	// obstacle is still offered.
	OverlapStartOnly OverlapPolicy = "startOnly"

	// OverlapFullInterval excludes a candidate whenever the slot body
	// [start, start+duration) intersects the obstacle.
	OverlapFullInterval OverlapPolicy = "fullInterval"
)

// ParseOverlapPolicy maps a config string to a policy, defaulting to the
// hardened full-interval rule.
func ParseOverlapPolicy(s string) OverlapPolicy {
	if s == string(OverlapStartOnly) {
		return OverlapStartOnly
	}
	return OverlapFullInterval
}

// GenerateSlots sweeps candidate start instants across the working window,
// stepping by the slot step (service duration + buffer). The sweep is
// half-open over start positions only: a candidate is emitted while it lies
// strictly before the window end, so the final slot may run past closing
// time. That asymmetry is deliberate and covered by tests.
func GenerateSlots(sched *models.DaySchedule, step time.Duration) []time.Time {
	if sched == nil || step <= 0 {
		return nil
	}
	var slots []time.Time
	for t := sched.Start; t.Before(sched.End); t = t.Add(step) {
		slots = append(slots, t)
	}
	return slots
}

// ExcludeBreaks drops candidates colliding with break periods per the policy.
func ExcludeBreaks(candidates []time.Time, duration time.Duration, breaks []models.Interval, policy OverlapPolicy) []time.Time {
	if len(breaks) == 0 {
		return candidates
	}
	kept := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !breakCollision(c, duration, breaks, policy) {
			kept = append(kept, c)
		}
	}
	return kept
}

func breakCollision(start time.Time, duration time.Duration, breaks []models.Interval, policy OverlapPolicy) bool {
	for _, b := range breaks {
		switch policy {
		case OverlapStartOnly:
			// start within [break.Start, break.End)
			if !start.Before(b.Start) && start.Before(b.End) {
				return true
			}
		default:
			if Overlaps(start, start.Add(duration), b.Start, b.End) {
				return true
			}
		}
	}
	return false
}

// ExcludeBusy drops candidates colliding with occupancy intervals (existing
// appointments) per the policy. Under startOnly a candidate is dropped only
// when its start instant equals an occupant's start — the legacy
// clock-equality rule.
func ExcludeBusy(candidates []time.Time, duration time.Duration, busy []models.Interval, policy OverlapPolicy) []time.Time {
	if len(busy) == 0 {
		return candidates
	}
	kept := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !busyCollision(c, duration, busy, policy) {
			kept = append(kept, c)
		}
	}
	return kept
}

func busyCollision(start time.Time, duration time.Duration, busy []models.Interval, policy OverlapPolicy) bool {
	for _, b := range busy {
		switch policy {
		case OverlapStartOnly:
			if start.Equal(b.Start) {
				return true
			}
		default:
			if Overlaps(start, start.Add(duration), b.Start, b.End) {
				return true
			}
		}
	}
	return false
}

// ExcludeHard drops candidates whose body overlaps a hard-unavailable
// interval (blocked time, provider unavailable periods). These are never
// offered regardless of policy.
func ExcludeHard(candidates []time.Time, duration time.Duration, hard []models.Interval) []time.Time {
	if len(hard) == 0 {
		return candidates
	}
	kept := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if !OverlapsAny(c, c.Add(duration), hard) {
			kept = append(kept, c)
		}
	}
	return kept
}
