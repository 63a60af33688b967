package reference

import (
	"context"
	"testing"

	openai "github.com/openai/openai-go"
	"github.com/stretchr/testify/require"

	"goa.design/agentbench/observer"
)

type stubChatClient struct {
	lastParams openai.ChatCompletionNewParams
	resp       *openai.ChatCompletion
	err        error
}

func (s *stubChatClient) New(_ context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.lastParams = params
	return s.resp, s.err
}

func TestOpenAIAgentHandleTurnReturnsFirstChoice(t *testing.T) {
	stub := &stubChatClient{resp: &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "建议采取稳健型配置"}},
		},
	}}
	factory := NewOpenAIAgentFactory(stub, OpenAIOptions{Model: "gpt-4.1", MaxTokens: 256})
	agent, err := factory("d1", observer.NewBus())
	require.NoError(t, err)

	text, err := agent.HandleTurn(context.Background(), "给我建议", "s1", "u1", nil)
	require.NoError(t, err)
	require.Equal(t, "建议采取稳健型配置", text)
	require.Len(t, stub.lastParams.Messages, 1)
}

func TestOpenAIAgentFactoryRejectsMissingModel(t *testing.T) {
	_, err := NewOpenAIAgentFactory(&stubChatClient{}, OpenAIOptions{})("d1", observer.NewBus())
	require.Error(t, err)
}

func TestOpenAIAgentErrorsWhenNoChoicesReturned(t *testing.T) {
	stub := &stubChatClient{resp: &openai.ChatCompletion{}}
	factory := NewOpenAIAgentFactory(stub, OpenAIOptions{Model: "gpt-4.1"})
	agent, err := factory("d1", observer.NewBus())
	require.NoError(t, err)

	_, err = agent.HandleTurn(context.Background(), "hi", "s1", "u1", nil)
	require.Error(t, err)
}
