// Package durfmt renders signed time spans for status lines.
package durfmt

import (
	"fmt"
	"time"
)

// Format renders d as "1h02m", "2m05s" or " 9s". Negative spans, i.e. time
// elapsed past a deadline, carry a leading "-". Sub-second precision is
// truncated toward zero before formatting.
func Format(d time.Duration) string {
	total := int64(d / time.Second)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	hours := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60

	switch {
	case hours >= 1:
		return fmt.Sprintf("%s%dh%02dm", sign, hours, minutes)
	case minutes >= 1:
		return fmt.Sprintf("%s%dm%02ds", sign, minutes, seconds)
	default:
		return fmt.Sprintf("%2s", fmt.Sprintf("%s%d", sign, seconds)) + "s"
	}
}
