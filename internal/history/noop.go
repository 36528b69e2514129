package history

// NoopRecorder is used when history is disabled or the database cannot be opened.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (NoopRecorder) RecordRun(Run) error { return nil }
func (NoopRecorder) Close() error        { return nil }
