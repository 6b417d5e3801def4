package billing

import "github.com/shopspring/decimal"

// Totals holds the derived financial fields of a bill, rounded to the
// currency's minor unit.
type Totals struct {
	SubTotal   float64
	VatAmount  float64
	GrandTotal float64
}

// LineTotal computes quantity times unit price rounded to two decimals.
func LineTotal(quantity int, pricePerUnit float64) float64 {
	total := decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(pricePerUnit))
	f, _ := total.Round(2).Float64()
	return f
}

// ComputeTotals derives vat_amount and grand_total from a subtotal and a
// VAT rate expressed as a percentage.
func ComputeTotals(subTotal, vatRate float64) Totals {
	sub := decimal.NewFromFloat(subTotal).Round(2)
	vat := sub.Mul(decimal.NewFromFloat(vatRate)).Div(decimal.NewFromInt(100)).Round(2)
	grand := sub.Add(vat)

	out := Totals{}
	out.SubTotal, _ = sub.Float64()
	out.VatAmount, _ = vat.Float64()
	out.GrandTotal, _ = grand.Float64()
	return out
}

// SumLineTotals adds up line totals without accumulating float error.
func SumLineTotals(items []ItemInput) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromInt(int64(it.Quantity)).Mul(decimal.NewFromFloat(it.PricePerUnit)))
	}
	f, _ := sum.Round(2).Float64()
	return f
}
