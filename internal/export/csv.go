// Package export writes finance data as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/courtside/internal/domain"
)

// SalesHeader is the first row of a sales export.
var SalesHeader = []string{
	"Date",
	"Event",
	"Ticket",
	"Buyer",
	"Quantity",
	"Gross",
	"Fees",
	"Net",
}

// WriteSalesCSV writes one row per sale. Amounts are decimal currency units
// with two places; dates are RFC 3339 in loc (UTC when nil).
func WriteSalesCSV(w io.Writer, sales []domain.SaleRecord, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(SalesHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, sale := range sales {
		record := []string{
			sale.CreatedAt.In(loc).Format(time.RFC3339),
			cell(sale.EventTitle),
			cell(sale.TicketTypeName),
			cell(sale.BuyerEmail),
			strconv.Itoa(int(sale.Quantity)),
			FormatCents(sale.GrossCents),
			FormatCents(sale.FeeCents),
			FormatCents(sale.NetCents()),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write sale %s: %w", sale.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatCents renders an amount in cents as "12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// cell neutralizes values a spreadsheet would evaluate as a formula.
func cell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// SalesFilename names a download, e.g. "sales-acme-30d-2026-10-17.csv".
func SalesFilename(orgSlug string, rangeDays int, now time.Time) string {
	span := "all"
	if rangeDays > 0 {
		span = strconv.Itoa(rangeDays) + "d"
	}
	return fmt.Sprintf("sales-%s-%s-%s.csv", orgSlug, span, now.Format("2006-01-02"))
}
