package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// openEndedTokens are the markers the platform's edge functions use for a
// position the candidate still holds.
var openEndedTokens = map[string]bool{
	"":        true,
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
}

// ParseExperienceDate parses the loosely formatted dates candidate profiles
// arrive with ("2021-03-01", "March 2021", "03/2021", ...). The second return
// is false when the token marks an open-ended position or cannot be parsed.
func ParseExperienceDate(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if openEndedTokens[strings.ToLower(trimmed)] {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(trimmed, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
