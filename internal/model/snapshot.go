package model

import "time"

// Snapshot states. A waiting snapshot means the last cycle could not
// produce fresh stats; it carries the previous good numbers, if any.
const (
	StateOK      = "ok"
	StateWaiting = "waiting"
)

// Sentinels used when no event has ever been parsed.
const (
	NoWorker   = "None"
	NoActivity = "No activity yet"
)

// DailyStats holds the aggregates derived from one refresh cycle.
type DailyStats struct {
	TodayCount    int     `json:"today_count"`    // distinct workers seen today
	LastWorker    string  `json:"last_worker"`    // worker of the globally latest event
	LastTimestamp string  `json:"last_timestamp"` // raw timestamp of the globally latest event
	TodayEvents   []Event `json:"today_events"`   // today's events, most recent first
}

// Snapshot is the per-cycle output handed to the rendering side.
type Snapshot struct {
	State     string    `json:"state"` // "ok" or "waiting"
	Error     string    `json:"error,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Today     string    `json:"today"` // reference date, "2006-01-02"

	DailyStats

	Percent int    `json:"percent"` // compliance, clamped to [0,100]
	Tier    string `json:"tier"`    // "high", "medium", "low"
}
