package models

import "time"

// CycleRecord is the persisted outcome of one scan cycle.
type CycleRecord struct {
	ID            string      `json:"cycle_id"`
	Timestamp     time.Time   `json:"ts"`
	Bull          []Candidate `json:"bull"`
	Bear          []Candidate `json:"bear"`
	Timeframes    []string    `json:"timeframes"`
	SortTimeframe string      `json:"sort_tf"`
}
