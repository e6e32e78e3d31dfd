// Package export implements the semicolon-delimited CSV format the dashboard
// exchanges with the back office. The format is fixed: the header below,
// RFC-4180 quoting for fields containing semicolons, quotes or newlines, and
// CRLF line endings for spreadsheet compatibility.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"salestrack/internal/domain"
)

// Header is the exact exported column set, in order.
var Header = []string{
	"Date",
	"Heure",
	"Vendeur",
	"N° Commande",
	"Offre",
	"Statut commande",
	"Client_Nom",
	"Client_Prenom",
	"Client_Telephone",
}

// Sales renders sales as CSV. Dates print dd/mm/yyyy, times hh:mm:ss, and
// statuses use their display labels.
func Sales(sales []domain.Sale) string {
	lines := make([]string, 0, len(sales)+1)
	lines = append(lines, joinRow(Header))
	for _, sale := range sales {
		date := ""
		hour := ""
		if !sale.Date.IsZero() {
			date = sale.Date.Format("02/01/2006")
			hour = sale.Date.Format("15:04:05")
		}
		lines = append(lines, joinRow([]string{
			date,
			hour,
			sale.Name,
			sale.OrderNumber,
			domain.OfferName(sale.Offer),
			domain.StatusLabel(sale.OrderStatus),
			sale.ClientLastName,
			sale.ClientFirstName,
			sale.ClientPhone,
		}))
	}
	return strings.Join(lines, "\r\n")
}

func joinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = escapeField(field)
	}
	return strings.Join(escaped, ";")
}

// escapeField quotes a field only when it contains a semicolon, a quote or a
// newline, doubling embedded quotes.
func escapeField(field string) string {
	if strings.ContainsAny(field, ";\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// Row is one parsed import line, positioned for error reporting.
type Row struct {
	Line            int
	Date            time.Time
	Name            string
	OrderNumber     string
	Offer           string
	RawStatus       string
	ClientLastName  string
	ClientFirstName string
	ClientPhone     string
}

// RowError reports a line that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseSales reads an import file in the export layout. A leading header row
// is skipped when recognized. Bad rows are collected, not fatal: the caller
// imports what parsed and reports the rest.
func ParseSales(r io.Reader, loc *time.Location) ([]Row, []RowError, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var rows []Row
	var rowErrs []RowError
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date") {
			continue
		}
		if len(record) < 6 {
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("expected at least 6 fields, got %d", len(record))})
			continue
		}

		date, err := parseDateTime(record[0], record[1], loc)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		row := Row{
			Line:        line,
			Date:        date,
			Name:        strings.TrimSpace(record[2]),
			OrderNumber: strings.TrimSpace(record[3]),
			Offer:       offerID(record[4]),
			RawStatus:   strings.TrimSpace(record[5]),
		}
		if len(record) > 6 {
			row.ClientLastName = strings.TrimSpace(record[6])
		}
		if len(record) > 7 {
			row.ClientFirstName = strings.TrimSpace(record[7])
		}
		if len(record) > 8 {
			row.ClientPhone = strings.TrimSpace(record[8])
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func parseDateTime(date, hour string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	hour = strings.TrimSpace(hour)
	if hour == "" {
		hour = "00:00:00"
	}
	for _, layout := range []string{"02/01/2006 15:04:05", "02/01/2006 15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, date+" "+hour, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q %q", date, hour)
}

// offerID maps a display name back to its catalog id, accepting ids as-is.
func offerID(value string) string {
	value = strings.TrimSpace(value)
	for _, offer := range domain.Offers {
		if strings.EqualFold(value, offer.Name) || value == offer.ID {
			return offer.ID
		}
	}
	return value
}
