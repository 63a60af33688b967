// Package reference provides minimal Agent implementations exercising the
// agentapi.Agent contract end to end: three real-provider adapters
// (Anthropic, OpenAI, Bedrock) and a dependency-free EchoAgent used by the
// harness's own tests. None of these are the evaluated system; they exist
// solely so the harness can be driven without a caller supplying its own
// adapter.
package reference

import (
	"context"
	"fmt"

	"goa.design/agentbench/dialog"
	"goa.design/agentbench/observer"
)

// EchoAgent deterministically echoes the user text back, prefixed, and
// emits a minimal observer trail (turn_start/turn_end) so tests exercising
// the full replay path have something to observe. It takes no
// dependencies and never errors.
type EchoAgent struct {
	dialogID string
	obs      observer.Handle
}

// NewEchoAgent takes the same arguments as an agentapi.Factory but returns
// the concrete *EchoAgent, so callers wrap it to use it as a Factory.
func NewEchoAgent(dialogID string, obs observer.Handle) (*EchoAgent, error) {
	return &EchoAgent{dialogID: dialogID, obs: obs}, nil
}

func (a *EchoAgent) HandleTurn(ctx context.Context, userText, sessionID, userID string, tp *dialog.TurnPair) (string, error) {
	turnPairID := 0
	if tp != nil {
		turnPairID = tp.TurnPairID
	}
	a.obs.OnEvent(observer.EventTurnStart, turnPairID, userText)
	reply := fmt.Sprintf("echo: %s", userText)
	a.obs.OnEvent(observer.EventTurnEnd, turnPairID, observer.TurnEnd{FinalContent: reply})
	return reply, nil
}
