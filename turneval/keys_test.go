package turneval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/dialog"
)

func TestResolveKeyProfileField(t *testing.T) {
	gt := dialog.ProfileGT{RiskLevelGT: "low"}
	rk := ResolveKey("profile_gt.risk_level_gt", gt, nil, nil)
	require.True(t, rk.Resolvable)
	require.Equal(t, "low", rk.TargetText)
	require.Equal(t, ResolverProfileField, rk.Resolver)
}

func TestResolveKeyConstraintsIndex(t *testing.T) {
	gt := dialog.ProfileGT{ConstraintsGT: []string{"c0", "c1"}}
	rk := ResolveKey("profile_gt.constraints_gt[1]", gt, nil, nil)
	require.True(t, rk.Resolvable)
	require.Equal(t, "c1", rk.TargetText)
	require.Equal(t, ResolverConstraintsGT, rk.Resolver)
}

func TestResolveKeyConstraintsIndexOutOfRange(t *testing.T) {
	gt := dialog.ProfileGT{ConstraintsGT: []string{"c0"}}
	rk := ResolveKey("profile_gt.constraints_gt[5]", gt, nil, nil)
	require.False(t, rk.Resolvable)
}

func TestResolveKeyHistoryTurnIndexWithinRange(t *testing.T) {
	pairs := []dialog.TurnPair{{TurnPairID: 1, UserText: "u1"}, {TurnPairID: 2, UserText: "u2"}}
	rk := ResolveKey("history_turn_index:2", dialog.ProfileGT{}, pairs, nil)
	require.True(t, rk.Resolvable)
	require.Equal(t, "u2", rk.TargetText)
	require.Equal(t, ResolverHistoryUserTurn, rk.Resolver)
}

func TestResolveKeyHistoryTurnIndexFallsBackToAbsoluteRawTurn(t *testing.T) {
	pairs := []dialog.TurnPair{{TurnPairID: 1, UserText: "u1"}}
	rawTurns := []dialog.Turn{{Text: "t0"}, {Text: "t1"}, {Text: "t2"}, {Text: "t3"}}
	rk := ResolveKey("history_turn_index:3", dialog.ProfileGT{}, pairs, rawTurns)
	require.True(t, rk.Resolvable)
	require.Equal(t, "t2", rk.TargetText)
	require.Equal(t, ResolverHistoryAbsTurn, rk.Resolver)
}

func TestResolveKeyUnknown(t *testing.T) {
	rk := ResolveKey("some_made_up_key", dialog.ProfileGT{}, nil, nil)
	require.False(t, rk.Resolvable)
	require.Equal(t, ResolverUnknown, rk.Resolver)
}

func TestKeyHitAcrossSources(t *testing.T) {
	sources := KeyHit("low", "risk=low here", "", "")
	require.Equal(t, []string{SourceShortTerm}, sources)

	sources = KeyHit("nowhere", "a", "b", "c")
	require.Empty(t, sources)

	sources = KeyHit("", "a", "b", "c")
	require.Empty(t, sources)
}
