package reference

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"goa.design/agentbench/agentapi"
	"goa.design/agentbench/dialog"
	"goa.design/agentbench/observer"
)

// RuntimeClient captures the subset of the AWS Bedrock runtime client the
// adapter calls, matching *bedrockruntime.Client so tests can substitute a
// fake in its place.
type RuntimeClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockOptions configures the Converse-backed reference agent.
type BedrockOptions struct {
	Model     string
	MaxTokens int32
}

// BedrockAgent drives one dialog's turns through the AWS Bedrock Converse
// API, accumulating conversation history across turns.
type BedrockAgent struct {
	runtime  RuntimeClient
	opts     BedrockOptions
	dialogID string
	obs      observer.Handle
	history  []brtypes.Message
}

// NewBedrockAgentFactory returns an agentapi.Factory bound to a shared
// Bedrock runtime client and options.
func NewBedrockAgentFactory(runtime RuntimeClient, opts BedrockOptions) agentapi.Factory {
	return func(dialogID string, obs observer.Handle) (agentapi.Agent, error) {
		if runtime == nil {
			return nil, errors.New("bedrock: runtime client is required")
		}
		if opts.Model == "" {
			return nil, errors.New("bedrock: model identifier is required")
		}
		return &BedrockAgent{runtime: runtime, opts: opts, dialogID: dialogID, obs: obs}, nil
	}
}

func (a *BedrockAgent) HandleTurn(ctx context.Context, userText, sessionID, userID string, tp *dialog.TurnPair) (string, error) {
	turnPairID := 0
	if tp != nil {
		turnPairID = tp.TurnPairID
	}
	a.obs.OnEvent(observer.EventTurnStart, turnPairID, userText)

	a.history = append(a.history, brtypes.Message{
		Role:    brtypes.ConversationRoleUser,
		Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: userText}},
	})

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(a.opts.Model),
		Messages: a.history,
	}
	if a.opts.MaxTokens > 0 {
		input.InferenceConfig = &brtypes.InferenceConfiguration{MaxTokens: aws.Int32(a.opts.MaxTokens)}
	}

	out, err := a.runtime.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("bedrock converse: %w", err)
	}

	text, err := firstBedrockText(out)
	if err != nil {
		return "", err
	}
	a.history = append(a.history, brtypes.Message{
		Role:    brtypes.ConversationRoleAssistant,
		Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: text}},
	})
	a.obs.OnEvent(observer.EventTurnEnd, turnPairID, observer.TurnEnd{FinalContent: text})
	return text, nil
}

func firstBedrockText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil {
		return "", errors.New("bedrock: response is nil")
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("bedrock: response carries no message output")
	}
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok && tb.Value != "" {
			return tb.Value, nil
		}
	}
	return "", nil
}
