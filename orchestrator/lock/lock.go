// Package lock serializes checkpoint appends across cooperating
// processes working the same run. A process-local sync.Mutex is the
// default; an optional Redis-backed lock coordinates multiple processes.
package lock

import "sync"

// Lock guards the checkpoint append critical section.
type Lock interface {
	Lock()
	Unlock()
}

// Local is the default, single-process lock.
type Local struct {
	mu sync.Mutex
}

func NewLocal() *Local { return &Local{} }

func (l *Local) Lock()   { l.mu.Lock() }
func (l *Local) Unlock() { l.mu.Unlock() }
