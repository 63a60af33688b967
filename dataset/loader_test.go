package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDecodesEachLineWithDatasetIndex(t *testing.T) {
	in := strings.NewReader(`{"dialog_id":"d1","turns":[{"role":"user","text":"hi"}]}
{"dialog_id":"d2","turns":[]}
`)
	got, err := Load(in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].DatasetIndex)
	require.Equal(t, "d1", got[0].DialogID)
	require.Equal(t, 2, got[1].DatasetIndex)
}

func TestLoadSkipsEmptyLines(t *testing.T) {
	in := strings.NewReader("{\"dialog_id\":\"d1\"}\n\n   \n{\"dialog_id\":\"d2\"}\n")
	got, err := Load(in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].DatasetIndex)
	require.Equal(t, 4, got[1].DatasetIndex)
}

func TestLoadEmitsPlaceholderOnDecodeFailure(t *testing.T) {
	in := strings.NewReader("{not valid json\n{\"dialog_id\":\"d2\"}\n")
	got, err := Load(in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "invalid_json_line_1", got[0].DialogID)
	require.NotEmpty(t, got[0].InvalidJSONError)
	require.Equal(t, 1, got[0].DatasetIndex)
}

func TestLoadEmitsPlaceholderOnSchemaViolation(t *testing.T) {
	in := strings.NewReader(`{"dialog_id":"d1","turns":[{"role":"user"}]}
{"dialog_id":"d2","turns":[]}
`)
	got, err := Load(in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "invalid_json_line_1", got[0].DialogID)
	require.Contains(t, got[0].InvalidJSONError, "schema validation failed")
	require.Equal(t, "d2", got[1].DialogID)
}

func TestLoadPreservesProfileGTPresence(t *testing.T) {
	in := strings.NewReader(`{"dialog_id":"d1","profile_gt":{"risk_level_gt":"low"}}
{"dialog_id":"d2"}
`)
	got, err := Load(in)
	require.NoError(t, err)
	require.True(t, got[0].HasProfileGT)
	require.Equal(t, "low", got[0].ProfileGT.RiskLevelGT)
	require.False(t, got[1].HasProfileGT)
}
