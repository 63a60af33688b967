package observer

import "sync"

// Handle is the single operation an Agent is given to report its internal
// state back to the harness. It is the only contract between an Agent
// implementation and the Observer; everything else about how the agent
// works is opaque to the harness.
//
// Emitting from the agent must never panic into the agent's control flow:
// a malformed payload (wrong concrete type for the given name) is dropped
// silently rather than raised.
type Handle interface {
	OnEvent(name EventName, turnPairID int, payload any)
}

// Bus is the thread-safe per-dialog event sink (C4). It owns one Bucket per
// turn-pair id and is exclusively owned by its enclosing dialog replay; it
// is never shared across dialogs.
type Bus struct {
	mu      sync.Mutex
	buckets map[int]*Bucket
}

// NewBus constructs an empty per-dialog event sink.
func NewBus() *Bus {
	return &Bus{buckets: make(map[int]*Bucket)}
}

// OnEvent records an event into the bucket for its turn_pair_id. Events
// whose turn_pair_id is <= 0 are silently ignored, as are events whose
// payload does not match the type expected for the given name and events
// whose name is not one of the recognized constants (forward
// compatibility with future agent builds).
func (b *Bus) OnEvent(name EventName, turnPairID int, payload any) {
	if turnPairID <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	bucket := b.buckets[turnPairID]
	if bucket == nil {
		bucket = &Bucket{TurnPairID: turnPairID}
		b.buckets[turnPairID] = bucket
	}

	switch name {
	case EventTurnStart:
		if q, ok := payload.(string); ok {
			bucket.Query = q
		}
	case EventRecallDone:
		if snap, ok := payload.(RecallSnapshot); ok {
			bucket.Recall = &snap
		} else if snap, ok := payload.(*RecallSnapshot); ok && snap != nil {
			s := *snap
			bucket.Recall = &s
		}
	case EventToolCalled:
		if call, ok := payload.(ToolCall); ok {
			bucket.Tools = append(bucket.Tools, call)
		} else if call, ok := payload.(*ToolCall); ok && call != nil {
			bucket.Tools = append(bucket.Tools, *call)
		}
	case EventComplianceDone:
		if v, ok := payload.(ComplianceVerdict); ok {
			bucket.Compliance = &v
		} else if v, ok := payload.(*ComplianceVerdict); ok && v != nil {
			vv := *v
			bucket.Compliance = &vv
		}
	case EventProfileSnapshot:
		if s, ok := payload.(ProfileSnapshot); ok {
			bucket.ProfileSnapshot = &s
		} else if s, ok := payload.(*ProfileSnapshot); ok && s != nil {
			ss := *s
			bucket.ProfileSnapshot = &ss
		}
	case EventTurnEnd:
		if e, ok := payload.(TurnEnd); ok {
			mergeTurnEnd(bucket, &e)
		} else if e, ok := payload.(*TurnEnd); ok && e != nil {
			mergeTurnEnd(bucket, e)
		}
	default:
		// Unknown event name: ignored for forward compatibility.
	}
}

// mergeTurnEnd overrides bucket.TurnEnd's fields with whatever the caller
// supplied, preserving previously-set fields the new payload leaves zero.
func mergeTurnEnd(bucket *Bucket, e *TurnEnd) {
	if bucket.TurnEnd == nil {
		cp := *e
		bucket.TurnEnd = &cp
		return
	}
	if e.LatencyMS != nil {
		l := *e.LatencyMS
		bucket.TurnEnd.LatencyMS = &l
	}
	if e.FinalContent != "" {
		bucket.TurnEnd.FinalContent = e.FinalContent
	}
}

// GetTurnPayload returns a deep copy of the bucket recorded for turnPairID,
// or nil if no event has been recorded for it yet. Missing events within a
// bucket are tolerated; callers see nil fields.
func (b *Bus) GetTurnPayload(turnPairID int) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	bucket, ok := b.buckets[turnPairID]
	if !ok {
		return nil
	}
	return bucket.clone()
}
