package domain

import "time"

// ActivityData is an activity together with its ordered exchanges
type ActivityData struct {
	Activity  Activity
	Exchanges []Exchange
}

// Dataset is a batch of inventory data to import
type Dataset struct {
	Activities []ActivityData
	Methods    map[Method]map[Key]float64
}

// ImportStats holds statistics from an import operation
type ImportStats struct {
	Activities int
	Exchanges  int
	Methods    int
	Factors    int
	Duration   time.Duration
}
