package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInvoicePrefix(t *testing.T) {
	jan := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "INV-2501", invoicePrefix(jan))

	dec := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "INV-2612", invoicePrefix(dec))
}

func TestNextInvoiceNumberMonotonic(t *testing.T) {
	require.Equal(t, "INV-250100008", nextInvoiceNumber("INV-2501", "INV-250100007"))
	require.Equal(t, "INV-250100100", nextInvoiceNumber("INV-2501", "INV-250100099"))
}

func TestNextInvoiceNumberNewMonthStartsAtOne(t *testing.T) {
	require.Equal(t, "INV-250200001", nextInvoiceNumber("INV-2502", ""))
}

func TestNextInvoiceNumberRestartsOnUnparsableSuffix(t *testing.T) {
	require.Equal(t, "INV-250100001", nextInvoiceNumber("INV-2501", "INV-2501LEGACY"))
}

func TestNextInvoiceNumberGrowsPastPadding(t *testing.T) {
	require.Equal(t, "INV-2501100000", nextInvoiceNumber("INV-2501", "INV-250199999"))
}
