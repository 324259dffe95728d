package advisor

import (
	"strconv"
	"strings"
)

// parseAmount converts a free-form numeric field to float64. Absent or
// malformed values become 0, matching the reference behavior. That silent
// default is a known usability gap kept deliberately; see DESIGN.md.
func parseAmount(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return 0
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < 0 {
		return 0
	}
	return val
}

// parseTruthy reports whether raw is one of the accepted affirmative tokens.
// Anything else, including the empty string, is false.
func parseTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true":
		return true
	default:
		return false
	}
}
