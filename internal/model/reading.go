// internal/model/reading.go
package model

import "time"

// ReadingKind identifies which scalar a reading carries
type ReadingKind string

const (
	ReadingGrowthRate ReadingKind = "growth_rate"
	ReadingODFiltered ReadingKind = "od_filtered"
)

// Reading is one telemetry scalar published by a unit
type Reading struct {
	Unit      string
	Kind      ReadingKind
	Value     float64
	Timestamp time.Time
}

// UnitReadings holds the latest known scalars for one unit
type UnitReadings struct {
	GrowthRate *float64
	ODFiltered *float64
	UpdatedAt  time.Time
}
