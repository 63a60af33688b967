package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRetryableMatchesCaseInsensitively(t *testing.T) {
	require.True(t, isRetryable("REQUEST TIMED OUT."))
	require.True(t, isRetryable("got connection error. retry later"))
	require.True(t, isRetryable("stream failed: incomplete chunked read"))
	require.False(t, isRetryable("invalid api key"))
}
