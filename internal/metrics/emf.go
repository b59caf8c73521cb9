package metrics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/prozz/aws-embedded-metrics-golang/emf"
)

const (
	// DefaultNamespace is the CloudWatch namespace counters are published under
	DefaultNamespace = "BirthdayPresentTracker"
	// DefaultService is the value of the service dimension
	DefaultService = "API"
)

// EMFRecorder writes counters as a CloudWatch Embedded Metric Format log line.
// Lambda ships stdout to CloudWatch Logs, which extracts the metrics.
type EMFRecorder struct {
	namespace string
	service   string
	out       io.Writer

	mu       sync.Mutex
	counters map[string]int
}

// NewEMFRecorder creates a recorder writing to stdout
func NewEMFRecorder(namespace, service string) *EMFRecorder {
	return NewEMFRecorderWithWriter(namespace, service, os.Stdout)
}

// NewEMFRecorderWithWriter creates a recorder writing to out
func NewEMFRecorderWithWriter(namespace, service string, out io.Writer) *EMFRecorder {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if service == "" {
		service = DefaultService
	}
	return &EMFRecorder{
		namespace: namespace,
		service:   service,
		out:       out,
		counters:  make(map[string]int),
	}
}

// Add increments the named counter
func (r *EMFRecorder) Add(name string, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[name] += value
}

// Flush writes all counters recorded since the last flush and resets them.
// Nothing is written when no counter was recorded.
func (r *EMFRecorder) Flush() error {
	r.mu.Lock()
	counters := r.counters
	r.counters = make(map[string]int)
	r.mu.Unlock()

	if len(counters) == 0 {
		return nil
	}

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &errWriter{w: r.out}
	logger := emf.New(emf.WithWriter(out)).
		Namespace(r.namespace).
		Dimension("service", r.service)
	for _, name := range names {
		logger.MetricAs(name, counters[name], emf.Count)
	}
	logger.Log()

	if out.err != nil {
		return fmt.Errorf("failed to write metrics: %w", out.err)
	}
	return nil
}

// errWriter keeps the first write error, which emf.Logger.Log discards
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
