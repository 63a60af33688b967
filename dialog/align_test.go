package dialog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignPairsUserWithNextAssistant(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"},
			{Role: RoleAssistant, Text: "a1"},
			{Role: RoleUser, Text: "u2"},
			{Role: RoleAssistant, Text: "a2"},
		},
	}

	pairs := Align(d)
	require.Len(t, pairs, 2)

	require.Equal(t, 1, pairs[0].TurnPairID)
	require.Equal(t, 0, pairs[0].UserTurnAbsIdx)
	require.Equal(t, 1, pairs[0].GTAssistantAbsIdx)
	require.Equal(t, "u1", pairs[0].UserText)
	require.Equal(t, "a1", pairs[0].GTAssistantText)

	require.Equal(t, 2, pairs[1].TurnPairID)
	require.Equal(t, 2, pairs[1].UserTurnAbsIdx)
	require.Equal(t, 3, pairs[1].GTAssistantAbsIdx)
}

func TestAlignSkipsInterveningNonUserAssistantTurns(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"},
			{Role: "system", Text: "note"},
			{Role: RoleAssistant, Text: "a1"},
		},
	}

	pairs := Align(d)
	require.Len(t, pairs, 1)
	require.Equal(t, 0, pairs[0].UserTurnAbsIdx)
	require.Equal(t, 2, pairs[0].GTAssistantAbsIdx)
}

func TestAlignDropsTrailingUnpairedUserTurn(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"},
			{Role: RoleAssistant, Text: "a1"},
			{Role: RoleUser, Text: "u2"},
		},
	}

	pairs := Align(d)
	require.Len(t, pairs, 1)
	require.Equal(t, "u1", pairs[0].UserText)
}

func TestAlignEmptyDialogProducesNoPairs(t *testing.T) {
	require.Empty(t, Align(Dialog{}))
}

func TestAlignTurnPairIDsAreContiguousFromOne(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"}, {Role: RoleAssistant, Text: "a1"},
			{Role: RoleUser, Text: "u2"}, {Role: RoleAssistant, Text: "a2"},
			{Role: RoleUser, Text: "u3"}, {Role: RoleAssistant, Text: "a3"},
		},
	}
	pairs := Align(d)
	require.Len(t, pairs, 3)
	for i, p := range pairs {
		require.Equal(t, i+1, p.TurnPairID)
	}
}

func TestAlignParsesGTTurnTags(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"},
			{Role: RoleAssistant, Text: "a1", TurnTags: map[string]any{
				"memory_required_keys_gt":   []any{"risk_level_gt"},
				"risk_disclosure_required_gt": []any{"volatility"},
				"compliance_label_gt":       "compliant",
			}},
		},
	}
	pairs := Align(d)
	require.Len(t, pairs, 1)
	require.NotNil(t, pairs[0].GTTurnTags)
	require.Equal(t, []string{"risk_level_gt"}, pairs[0].GTTurnTags.MemoryRequiredKeysGT)
	require.Equal(t, "compliant", pairs[0].GTTurnTags.ComplianceLabelGT)
}

func TestUserTurnIndexResolvesOneBasedPosition(t *testing.T) {
	d := Dialog{
		Turns: []Turn{
			{Role: RoleUser, Text: "u1"}, {Role: RoleAssistant, Text: "a1"},
			{Role: RoleUser, Text: "u2"}, {Role: RoleAssistant, Text: "a2"},
		},
	}
	pairs := Align(d)
	idx, ok := UserTurnIndex(pairs, 2)
	require.True(t, ok)
	require.Equal(t, 2, idx)

	_, ok = UserTurnIndex(pairs, 99)
	require.False(t, ok)
}
