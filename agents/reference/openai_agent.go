package reference

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/dialog"
	"goa.design/agentbench/observer"
)

// ChatClient captures the subset of the OpenAI Go SDK client the adapter
// calls, so tests can substitute a fake for the real completions service.
type ChatClient interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIOptions configures the Chat Completions-backed reference agent.
type OpenAIOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// OpenAIAgent drives one dialog's turns through the OpenAI Chat Completions
// API, accumulating conversation history across turns the way a real
// memory-augmented assistant's outer loop would.
type OpenAIAgent struct {
	client   ChatClient
	opts     OpenAIOptions
	dialogID string
	obs      observer.Handle
	history  []openai.ChatCompletionMessageParamUnion
}

// NewOpenAIAgentFactory returns an agentapi.Factory bound to a shared chat
// completions client and options.
func NewOpenAIAgentFactory(client ChatClient, opts OpenAIOptions) agentapi.Factory {
	return func(dialogID string, obs observer.Handle) (agentapi.Agent, error) {
		if client == nil {
			return nil, errors.New("openai: chat client is required")
		}
		if opts.Model == "" {
			return nil, errors.New("openai: model identifier is required")
		}
		if opts.MaxTokens <= 0 {
			opts.MaxTokens = 1024
		}
		return &OpenAIAgent{client: client, opts: opts, dialogID: dialogID, obs: obs}, nil
	}
}

func (a *OpenAIAgent) HandleTurn(ctx context.Context, userText, sessionID, userID string, tp *dialog.TurnPair) (string, error) {
	turnPairID := 0
	if tp != nil {
		turnPairID = tp.TurnPairID
	}
	a.obs.OnEvent(observer.EventTurnStart, turnPairID, userText)

	a.history = append(a.history, openai.UserMessage(userText))
	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(a.opts.Model),
		Messages:  a.history,
		MaxTokens: param.NewOpt(int64(a.opts.MaxTokens)),
	}
	if a.opts.Temperature > 0 {
		params.Temperature = param.NewOpt(a.opts.Temperature)
	}

	resp, err := a.client.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}

	text := resp.Choices[0].Message.Content
	a.history = append(a.history, openai.AssistantMessage(text))
	a.obs.OnEvent(observer.EventTurnEnd, turnPairID, observer.TurnEnd{FinalContent: text})
	return text, nil
}
