package executor

import "strings"

// retryableSubstrings is the fixed set of case-insensitive substrings that
// mark a turn error as worth retrying. Any other error is terminal.
var retryableSubstrings = []string{
	"Request timed out.",
	"Connection error.",
	"incomplete chunked read",
}

func isRetryable(errMsg string) bool {
	lower := strings.ToLower(errMsg)
	for _, s := range retryableSubstrings {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
