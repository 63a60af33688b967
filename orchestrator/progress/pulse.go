package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"goa.design/pulse/streaming"
)

// PulseStream is the subset of a goa.design/pulse stream that the
// broadcast sink needs. A *streaming.Stream (constructed over a Redis
// client via streaming.NewStream) satisfies it directly.
type PulseStream interface {
	Add(ctx context.Context, event string, payload []byte) (string, error)
}

var _ PulseStream = (*streaming.Stream)(nil)

// PulseSink mirrors every event onto a Pulse stream so a live dashboard
// can subscribe to run progress. It never replaces the JSONL log; a
// publish failure is logged and swallowed, matching the progress-log
// error-handling policy.
type PulseSink struct {
	stream PulseStream
	next   Sink // the mandatory JSONL sink, always invoked first
}

// NewPulseSink wraps next (normally a *JSONLSink) with a best-effort
// broadcast onto stream.
func NewPulseSink(stream PulseStream, next Sink) *PulseSink {
	return &PulseSink{stream: stream, next: next}
}

// Emit writes to the durable sink first, then best-effort broadcasts.
func (s *PulseSink) Emit(e Event) {
	s.next.Emit(e)

	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	_, _ = s.stream.Add(context.Background(), fmt.Sprintf("run/%s", e.RunID), payload)
}
