package history

import "time"

// Run is one completed scrape. Observations themselves are never stored.
type Run struct {
	ID          string
	StartedAt   time.Time
	Start       time.Time
	End         time.Time
	Policy      string
	Format      string
	Input       string
	Output      string
	OutputBytes int64
	Fetched     int
	Rows        int
	Missing     int
}

type QueryOpts struct {
	Since time.Time
	Limit int
}

// Recorder persists runs. Implementations must be safe to Close more than once.
type Recorder interface {
	RecordRun(r Run) error
	Close() error
}
