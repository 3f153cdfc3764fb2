package model

import "time"

// Unit represents one bioreactor unit participating in the experiment
type Unit struct {
	Name     string
	LastSeen time.Time
}

// Stale reports whether the unit has been silent for longer than threshold.
func (u Unit) Stale(now time.Time, threshold time.Duration) bool {
	if u.LastSeen.IsZero() {
		return true
	}
	return now.Sub(u.LastSeen) > threshold
}
