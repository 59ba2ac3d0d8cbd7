package types

import "time"

// IndicatorPoint is one timestamped value of a strategy indicator.
type IndicatorPoint struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Value     float64   `yaml:"value" json:"value"`
}

// IndicatorSeries is a snapshot of one indicator a strategy tracked
// during the run. It is consumed only by presentation layers; the core
// produces it as plain data and never renders it.
type IndicatorSeries struct {
	Name   string           `yaml:"name" json:"name"`
	Points []IndicatorPoint `yaml:"points" json:"points"`
	// Color and Alpha are display hints carried through to the renderer.
	Color string  `yaml:"color" json:"color"`
	Alpha float64 `yaml:"alpha" json:"alpha"`
}
