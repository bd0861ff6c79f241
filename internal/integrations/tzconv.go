package integrations

import (
	"fmt"
	"time"
)

// timeLayouts are tried in order when parsing a zone-less timestamp.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ConvertTimezone reinterprets a naive timestamp from one IANA zone into
// another and returns the converted time in RFC 3339 form.
func ConvertTimezone(timeStr, fromTZ, toTZ string) string {
	src, err := time.LoadLocation(fromTZ)
	if err != nil {
		return fmt.Sprintf("Failed to convert timezone: unknown zone %q", fromTZ)
	}
	dst, err := time.LoadLocation(toTZ)
	if err != nil {
		return fmt.Sprintf("Failed to convert timezone: unknown zone %q", toTZ)
	}

	var parsed time.Time
	var parseErr error
	for _, layout := range timeLayouts {
		parsed, parseErr = time.ParseInLocation(layout, timeStr, src)
		if parseErr == nil {
			break
		}
	}
	if parseErr != nil {
		return fmt.Sprintf("Failed to convert timezone: cannot parse %q", timeStr)
	}

	return parsed.In(dst).Format(time.RFC3339)
}
