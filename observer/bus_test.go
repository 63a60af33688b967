package observer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusIgnoresNonPositiveTurnPairID(t *testing.T) {
	b := NewBus()
	b.OnEvent(EventTurnStart, 0, "hello")
	b.OnEvent(EventTurnStart, -1, "hello")
	require.Nil(t, b.GetTurnPayload(0))
	require.Nil(t, b.GetTurnPayload(-1))
}

func TestBusRecordsTurnStartQuery(t *testing.T) {
	b := NewBus()
	b.OnEvent(EventTurnStart, 1, "what is my risk tolerance?")
	got := b.GetTurnPayload(1)
	require.NotNil(t, got)
	require.Equal(t, "what is my risk tolerance?", got.Query)
}

func TestBusToolCalledAppendsInEmissionOrder(t *testing.T) {
	b := NewBus()
	b.OnEvent(EventToolCalled, 1, ToolCall{Name: "recall_profile"})
	b.OnEvent(EventToolCalled, 1, ToolCall{Name: "check_compliance"})
	got := b.GetTurnPayload(1)
	require.Len(t, got.Tools, 2)
	require.Equal(t, "recall_profile", got.Tools[0].Name)
	require.Equal(t, "check_compliance", got.Tools[1].Name)
}

func TestBusRecallAndComplianceReplaceNotAppend(t *testing.T) {
	b := NewBus()
	b.OnEvent(EventRecallDone, 1, RecallSnapshot{SourceText: "first"})
	b.OnEvent(EventRecallDone, 1, RecallSnapshot{SourceText: "second"})
	got := b.GetTurnPayload(1)
	require.Equal(t, "second", got.Recall.SourceText)

	b.OnEvent(EventComplianceDone, 1, ComplianceVerdict{Label: "compliant"})
	b.OnEvent(EventComplianceDone, 1, ComplianceVerdict{Label: "violation"})
	got = b.GetTurnPayload(1)
	require.Equal(t, "violation", got.Compliance.Label)
}

func TestBusTurnEndMayOverrideLatencyOnly(t *testing.T) {
	b := NewBus()
	l1 := int64(120)
	b.OnEvent(EventTurnEnd, 1, TurnEnd{LatencyMS: &l1, FinalContent: "the answer"})

	l2 := int64(95)
	b.OnEvent(EventTurnEnd, 1, TurnEnd{LatencyMS: &l2})

	got := b.GetTurnPayload(1)
	require.Equal(t, int64(95), *got.TurnEnd.LatencyMS)
	require.Equal(t, "the answer", got.TurnEnd.FinalContent)
}

func TestBusMalformedPayloadIsSwallowedNotPanicked(t *testing.T) {
	b := NewBus()
	require.NotPanics(t, func() {
		b.OnEvent(EventRecallDone, 1, "not a recall snapshot")
		b.OnEvent(EventToolCalled, 1, 42)
		b.OnEvent("unknown_event_from_future_agent", 1, map[string]any{"x": 1})
	})
	got := b.GetTurnPayload(1)
	require.NotNil(t, got)
	require.Nil(t, got.Recall)
	require.Empty(t, got.Tools)
}

func TestGetTurnPayloadReturnsDeepCopy(t *testing.T) {
	b := NewBus()
	b.OnEvent(EventRecallDone, 1, RecallSnapshot{Keys: []string{"risk_level_gt"}})
	got := b.GetTurnPayload(1)
	got.Recall.Keys[0] = "mutated"

	got2 := b.GetTurnPayload(1)
	require.Equal(t, "risk_level_gt", got2.Recall.Keys[0])
}

func TestGetTurnPayloadMissingReturnsNil(t *testing.T) {
	b := NewBus()
	require.Nil(t, b.GetTurnPayload(5))
}
