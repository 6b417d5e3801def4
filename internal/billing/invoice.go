package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// invoicePrefix yields the month-scoped prefix, e.g. "INV-2501" for
// January 2025.
func invoicePrefix(t time.Time) string {
	return "INV-" + t.Format("0601")
}

// nextInvoiceNumber derives the next number in a month's sequence from
// the highest existing one. Zero padding keeps string ordering equal to
// numeric ordering, so "highest" can be resolved lexicographically.
// If the trailing digits of the last number do not parse, the sequence
// restarts at 1.
func nextInvoiceNumber(prefix, last string) string {
	seq := 1
	if last != "" {
		digits := strings.TrimPrefix(last, prefix)
		if n, err := strconv.Atoi(digits); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, seq)
}
