package models

// Detector is a fixed detector station on the survey map.
// The detector set is loaded once at startup and never mutated.
type Detector struct {
	ID int     `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}
