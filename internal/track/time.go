package track

import "time"

// StampLayout is the UTC timestamp format written to the containers,
// microsecond ISO-8601 with a literal Z. Stored stamps of any vintage
// are treated as opaque text and never reformatted.
const StampLayout = "2006-01-02T15:04:05.000000Z"

// NowStamp returns the current UTC time in the container timestamp format.
func NowStamp() string {
	return time.Now().UTC().Format(StampLayout)
}
