package progress

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"goa.design/agentbench/telemetry"
)

// JSONLSink appends one JSON line per event to a file, guarded by a mutex
// since the orchestrator's worker pool emits concurrently. This is the
// mandatory, durable record; other sinks (e.g. a pulse broadcaster) may be
// layered alongside it but never replace it.
type JSONLSink struct {
	mu     sync.Mutex
	file   *os.File
	logger telemetry.Logger
}

// NewJSONLSink opens (creating/appending) the progress log at path.
func NewJSONLSink(path string, logger telemetry.Logger) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &JSONLSink{file: f, logger: logger}, nil
}

// Emit appends the event as one JSON line. Failures are logged and
// swallowed: progress-log writes use best-effort error handling.
func (s *JSONLSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(e)
	if err != nil {
		s.logger.Warn(context.Background(), "progress: failed to marshal event", "type", e.Type, "err", err.Error())
		return
	}
	b = append(b, '\n')
	if _, err := s.file.Write(b); err != nil {
		s.logger.Warn(context.Background(), "progress: failed to write event", "type", e.Type, "err", err.Error())
	}
}

// Close flushes and closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
