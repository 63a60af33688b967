// Package agentapi defines the single external boundary the evaluation
// harness depends on: the Agent contract. Everything on the other side of
// this contract (memory manager, window refiner, compliance guard, tool
// implementations, model adapters) is a black box to the harness.
package agentapi

import (
	"context"

	"goa.design/agentbench/dialog"
	"goa.design/agentbench/observer"
)

// Agent is the contract an evaluated system implements. HandleTurn must be
// safe to call sequentially within one dialog — the harness never calls it
// concurrently for the same dialog — and must emit observer events tagged
// with the current turn_pair_id. A returned error is tolerated and mapped
// to a turn_status of "error"; it must never panic.
type Agent interface {
	HandleTurn(ctx context.Context, userText, sessionID, userID string, turnPair *dialog.TurnPair) (string, error)
}

// Factory constructs a fresh Agent for one dialog. Agents are never shared
// across dialogs; each gets its own Observer so state cannot leak between
// conversations.
type Factory func(dialogID string, obs observer.Handle) (Agent, error)
