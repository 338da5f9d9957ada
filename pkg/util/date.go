package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseUnixMillis parses a decimal millisecond timestamp into UTC time.
func ParseUnixMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unix millis %q: %w", s, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// LoadLocationDefault loads an IANA zone, returning def when name is empty or unknown.
func LoadLocationDefault(name string, def *time.Location) (*time.Location, bool) {
	if name == "" {
		return def, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return def, false
	}
	return loc, true
}
