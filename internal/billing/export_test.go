package billing

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	customer := "Acme Ltd"
	employee := "Jane Doe"
	due := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	bills := []Bill{
		{
			InvoiceNumber: "INV-250100001",
			BillType:      "sale",
			CustomerName:  &customer,
			EmployeeName:  &employee,
			BillStatus:    StatusPending,
			PaymentStatus: StatusPending,
			PaymentMethod: DefaultPaymentMethod,
			SubTotal:      30.00,
			VatRate:       7,
			VatAmount:     2.10,
			GrandTotal:    32.10,
			DueDate:       &due,
			CreatedAt:     time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			InvoiceNumber: "INV-250100002",
			BillType:      "sale",
			BillStatus:    StatusPaid,
			PaymentStatus: StatusPaid,
			PaymentMethod: "TRANSFER",
			SubTotal:      100.00,
			VatAmount:     10.00,
			VatRate:       10,
			GrandTotal:    110.00,
			CreatedAt:     time.Date(2025, time.January, 16, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	err := WriteCSV(&buf, bills, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "# Report: Bills Export")
	require.Contains(t, out, "Rows: 2")
	require.Contains(t, out, "# Grand Total: 142.10")

	var data []string
	for _, line := range strings.Split(out, "\r\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		data = append(data, line)
	}
	records, err := csv.NewReader(strings.NewReader(strings.Join(data, "\n"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Invoice", records[0][0])
	require.Equal(t, "INV-250100001", records[1][0])
	require.Equal(t, "Acme Ltd", records[1][2])
	require.Equal(t, "32.10", records[1][10])
	require.Equal(t, "2025-02-01", records[1][11])
	require.Equal(t, "", records[2][2])
	require.Equal(t, "110.00", records[2][10])
}
