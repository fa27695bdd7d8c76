package utils

import (
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return Iso8601FromTime(time.Now())
}

// Iso8601FromTime converts a timestamp to ISO8601 format in UTC
func Iso8601FromTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
