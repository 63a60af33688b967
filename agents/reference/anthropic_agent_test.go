package reference

import (
	"context"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/require"

	"goa.design/agentbench/observer"
)

type stubMessagesClient struct {
	lastParams sdk.MessageNewParams
	resp       *sdk.Message
	err        error
}

func (s *stubMessagesClient) New(_ context.Context, body sdk.MessageNewParams, _ ...option.RequestOption) (*sdk.Message, error) {
	s.lastParams = body
	return s.resp, s.err
}

func TestAnthropicAgentHandleTurnReturnsFirstTextBlock(t *testing.T) {
	stub := &stubMessagesClient{resp: &sdk.Message{
		Content: []sdk.ContentBlockUnion{{Type: "text", Text: "您的风险等级为中风险"}},
	}}
	factory := NewAnthropicAgentFactory(stub, AnthropicOptions{Model: "claude-3-5-sonnet", MaxTokens: 256})
	agent, err := factory("d1", observer.NewBus())
	require.NoError(t, err)

	text, err := agent.HandleTurn(context.Background(), "我的风险偏好是什么", "s1", "u1", nil)
	require.NoError(t, err)
	require.Equal(t, "您的风险等级为中风险", text)
	require.Len(t, stub.lastParams.Messages, 1)
}

func TestAnthropicAgentFactoryRejectsMissingModel(t *testing.T) {
	_, err := NewAnthropicAgentFactory(&stubMessagesClient{}, AnthropicOptions{})("d1", observer.NewBus())
	require.Error(t, err)
}

func TestAnthropicAgentFactoryRejectsNilClient(t *testing.T) {
	_, err := NewAnthropicAgentFactory(nil, AnthropicOptions{Model: "x"})("d1", observer.NewBus())
	require.Error(t, err)
}
