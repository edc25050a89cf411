// Package utils formats entry metadata for display.
package utils

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// HumanizeBytes formats a byte count in binary units, e.g. "1.5 KiB".
func HumanizeBytes(b int64) string {
	if b < 0 {
		b = 0
	}
	return humanize.IBytes(uint64(b))
}

// HumanizeBytesCompact drops the space and the "iB" suffix: 1536 -> "1.5K".
func HumanizeBytesCompact(b int64) string {
	s := strings.ReplaceAll(HumanizeBytes(b), " ", "")
	s = strings.TrimSuffix(s, "iB")
	return s
}

// Age describes t relative to now, e.g. "3 hours ago". A zero time is "-".
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
