package reference

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/dialog"
	"goa.design/agentbench/observer"
)

// MessagesClient captures the subset of the Anthropic SDK client the
// adapter calls, so tests can substitute a fake in place of
// *sdk.MessageService.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// AnthropicOptions configures the Claude-backed reference agent.
type AnthropicOptions struct {
	Model     string
	MaxTokens int
}

// AnthropicAgent drives one dialog's turns through the Anthropic Messages
// API, one user message per HandleTurn call. The agent keeps the dialog's
// prior messages in its own history and resends them on each call; that
// state is not visible to the observer.
type AnthropicAgent struct {
	client   MessagesClient
	opts     AnthropicOptions
	dialogID string
	obs      observer.Handle
	history  []sdk.MessageParam
}

// NewAnthropicAgentFactory returns an agentapi.Factory bound to a shared
// Messages client and options.
func NewAnthropicAgentFactory(client MessagesClient, opts AnthropicOptions) agentapi.Factory {
	return func(dialogID string, obs observer.Handle) (agentapi.Agent, error) {
		if client == nil {
			return nil, errors.New("anthropic: messages client is required")
		}
		if opts.Model == "" {
			return nil, errors.New("anthropic: model identifier is required")
		}
		if opts.MaxTokens <= 0 {
			opts.MaxTokens = 1024
		}
		return &AnthropicAgent{client: client, opts: opts, dialogID: dialogID, obs: obs}, nil
	}
}

func (a *AnthropicAgent) HandleTurn(ctx context.Context, userText, sessionID, userID string, tp *dialog.TurnPair) (string, error) {
	turnPairID := 0
	if tp != nil {
		turnPairID = tp.TurnPairID
	}
	a.obs.OnEvent(observer.EventTurnStart, turnPairID, userText)

	a.history = append(a.history, sdk.NewUserMessage(sdk.NewTextBlock(userText)))
	resp, err := a.client.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.opts.Model),
		MaxTokens: int64(a.opts.MaxTokens),
		Messages:  a.history,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	text := firstText(resp)
	a.history = append(a.history, sdk.NewAssistantMessage(sdk.NewTextBlock(text)))
	a.obs.OnEvent(observer.EventTurnEnd, turnPairID, observer.TurnEnd{FinalContent: text})
	return text, nil
}

func firstText(msg *sdk.Message) string {
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}
