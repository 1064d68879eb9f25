package temporal

import (
	"strings"
	"time"
)

// localLayout is the offset-free wall-clock format used for display.
const localLayout = "2006-01-02T15:04:05"

// parseLayouts are the ISO-8601 shapes observed in API date strings,
// tried in order after suffix normalization.
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	// Non-colon offsets appear in dates written through the task write
	// path, which uses the provider's millisecond format.
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp parses an API date string into an absolute
// instant. Trailing "Z" and "+0000" suffixes are normalized to
// "+00:00" before a strict ISO-8601 parse; strings with no offset are
// taken as UTC. The false return is the error signal: no guessing
// happens beyond the suffix normalization, and the function never
// panics.
func NormalizeTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	s := raw
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	} else if strings.HasSuffix(s, "+0000") {
		s = strings.TrimSuffix(s, "+0000") + "+00:00"
	}

	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ConvertToLocal converts a UTC-encoded timestamp to a zone-local
// wall-clock string with no offset suffix, for display only. An empty
// or unresolvable zone formats the UTC instant the same way. Input that
// cannot be parsed at all is returned unchanged: display is
// best-effort, and a malformed date should render as-is rather than
// crash the caller or be silently corrupted.
func ConvertToLocal(raw, zoneName string) string {
	t, ok := NormalizeTimestamp(raw)
	if !ok {
		return raw
	}

	loc := time.UTC
	if strings.TrimSpace(zoneName) != "" {
		if l, err := time.LoadLocation(zoneName); err == nil {
			loc = l
		}
	}
	return t.In(loc).Format(localLayout)
}
