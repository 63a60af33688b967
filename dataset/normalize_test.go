package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goa.design/agentbench/dialog"
)

func TestNormalizeSynthesizesDialogIDFromDatasetIndex(t *testing.T) {
	d := Normalize(dialog.Dialog{DatasetIndex: 3})
	require.Equal(t, "dialog_3", d.DialogID)
	require.NotNil(t, d.Turns)
	require.Empty(t, d.Turns)
}

func TestNormalizePreservesExplicitDialogID(t *testing.T) {
	d := Normalize(dialog.Dialog{DatasetIndex: 3, DialogID: "custom-id"})
	require.Equal(t, "custom-id", d.DialogID)
}

func TestNormalizeLeavesPopulatedTurnsUntouched(t *testing.T) {
	turns := []dialog.Turn{{Role: dialog.RoleUser, Text: "hi"}}
	d := Normalize(dialog.Dialog{DatasetIndex: 1, Turns: turns})
	require.Equal(t, turns, d.Turns)
}
