package model

// Event represents a single parsed hand-hygiene record.
type Event struct {
	WorkerName   string `json:"worker_name"`   // as given in the source, outer-trimmed only
	TimestampRaw string `json:"timestamp_raw"` // original timestamp text, e.g. "2024-03-15 08:00:00"
	DatePart     string `json:"date_part"`     // substring of TimestampRaw before the first space
	EpochMillis  int64  `json:"epoch_millis"`  // parsed absolute time
}
