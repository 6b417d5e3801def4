package billing

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shopspring/decimal"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeComment(line string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return nil
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// WriteCSV streams the bill set as CSV with a metadata preamble and a
// grand-total summary line.
func WriteCSV(w io.Writer, bills []Bill, generatedAt time.Time) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment("# Report: Bills Export"); err != nil {
		return err
	}
	if err := streamer.writeComment(fmt.Sprintf("# Generated: %s | Rows: %d", generatedAt.Format(time.RFC3339), len(bills))); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"Invoice", "Type", "Customer", "Employee", "Status", "Payment Status", "Payment Method", "Sub Total", "VAT Rate", "VAT Amount", "Grand Total", "Due Date", "Created At"}); err != nil {
		return err
	}

	grand := decimal.Zero
	for _, b := range bills {
		dueDate := ""
		if b.DueDate != nil {
			dueDate = b.DueDate.Format("2006-01-02")
		}
		if err := streamer.writeRow([]string{
			b.InvoiceNumber,
			b.BillType,
			strOrEmpty(b.CustomerName),
			strOrEmpty(b.EmployeeName),
			b.BillStatus,
			b.PaymentStatus,
			b.PaymentMethod,
			formatMoney(b.SubTotal),
			strconv.FormatFloat(b.VatRate, 'f', 2, 64),
			formatMoney(b.VatAmount),
			formatMoney(b.GrandTotal),
			dueDate,
			b.CreatedAt.Format("2006-01-02"),
		}); err != nil {
			return err
		}
		grand = grand.Add(decimal.NewFromFloat(b.GrandTotal))
	}

	total, _ := grand.Round(2).Float64()
	printer := message.NewPrinter(language.English)
	if err := streamer.writeComment(printer.Sprintf("# Grand Total: %.2f", total)); err != nil {
		return err
	}
	return streamer.Close()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
