package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(30.00, 7)
	require.Equal(t, 30.00, totals.SubTotal)
	require.Equal(t, 2.10, totals.VatAmount)
	require.Equal(t, 32.10, totals.GrandTotal)
}

func TestComputeTotalsZeroRate(t *testing.T) {
	totals := ComputeTotals(123.45, 0)
	require.Equal(t, 123.45, totals.SubTotal)
	require.Equal(t, 0.0, totals.VatAmount)
	require.Equal(t, 123.45, totals.GrandTotal)
}

func TestComputeTotalsRoundsToMinorUnit(t *testing.T) {
	// 33.33 * 7.5% = 2.49975, must round to 2.50
	totals := ComputeTotals(33.33, 7.5)
	require.Equal(t, 2.50, totals.VatAmount)
	require.Equal(t, 35.83, totals.GrandTotal)
}

func TestLineTotal(t *testing.T) {
	require.Equal(t, 30.00, LineTotal(3, 10.00))
	require.Equal(t, 0.30, LineTotal(3, 0.10))
}

func TestSumLineTotalsAvoidsFloatDrift(t *testing.T) {
	items := make([]ItemInput, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, ItemInput{Quantity: 1, PricePerUnit: 0.1})
	}
	require.Equal(t, 1.00, SumLineTotals(items))
}
