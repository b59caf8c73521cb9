package metrics

// Counter names emitted by the record service
const (
	SecretsManagerAccessFailure = "SecretsManagerAccessFailure"
	DBConnectionFailure         = "DBConnectionFailure"
	DBQuerySuccess              = "DBQuerySuccess"
	DBQueryFailure              = "DBQueryFailure"
)

// Recorder accumulates counters during an invocation
type Recorder interface {
	Add(name string, value int)
	Flush() error
}

// NopRecorder discards everything
type NopRecorder struct{}

// Add implements Recorder
func (NopRecorder) Add(string, int) {}

// Flush implements Recorder
func (NopRecorder) Flush() error { return nil }
