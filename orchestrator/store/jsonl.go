package store

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"goa.design/agentbench/trace"
)

// JSONLStore is the mandatory, spec-required on-disk checkpoint format:
// one DialogTrace per line, append-only. Dedup-on-load is last-writer-wins
// keyed by dialog_id; a partial last line (from a crash mid-write) is
// simply ignored rather than failing the load.
type JSONLStore struct {
	mu   sync.Mutex
	file *os.File
}

// NewJSONLStore opens (creating if absent) the checkpoint file at path for
// append, leaving any existing content in place for Load to replay.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLStore{file: f}, nil
}

// Load scans the checkpoint file line by line. Malformed or partial lines
// are skipped but never rewritten; the file itself is never truncated or
// repaired by Load.
func (s *JSONLStore) Load() (map[string]trace.DialogTrace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}
	out := make(map[string]trace.DialogTrace)
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var dt trace.DialogTrace
		if err := json.Unmarshal([]byte(line), &dt); err != nil {
			continue
		}
		if dt.DialogID == "" {
			continue
		}
		out[dt.DialogID] = dt
	}
	if _, err := s.file.Seek(0, 2); err != nil {
		return out, err
	}
	return out, nil
}

// Append writes dt as one JSON line, under a mutex so concurrent workers
// cannot interleave partial lines. Line boundaries are the durability
// unit; each Append is flushed before returning.
func (s *JSONLStore) Append(dt trace.DialogTrace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(dt)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if _, err := s.file.Write(b); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close closes the underlying file.
func (s *JSONLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
