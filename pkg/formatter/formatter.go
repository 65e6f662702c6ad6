package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber converts an integer to a string with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	return humanize.Comma(int64(n))
}

// FormatLikes renders a like counter, e.g. "1 like", "1,204 likes".
func FormatLikes(n int) string {
	if n == 1 {
		return "1 like"
	}
	return FormatNumber(n) + " likes"
}

// TimeAgo renders t relative to now ("3 minutes ago"). Zero times render as "".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// ByteSize renders a size in IEC units, e.g. "14 MiB".
func ByteSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Flags lists flagged moderation categories as "a, b".
func Flags(categories []string) string {
	if len(categories) == 0 {
		return "none"
	}
	return strings.Join(categories, ", ")
}

// Ordinal renders a 0-based index as a 1-based position label, e.g. "#3".
func Ordinal(index int) string {
	return fmt.Sprintf("#%d", index+1)
}
