// internal/infra/sheet/cell.go
package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"billing_reminder_api/internal/domain/billing"
)

// excelEpoch is the day-serial origin used by legacy spreadsheets
// (the 1900 date system, including its leap-year bug offset).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dueDateLayouts are tried in order against string cells. Day-first formats
// take precedence over month-first, matching the sheets this API ingests.
var dueDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
}

// parseDueDate converts a raw cell value into a calendar date. String cells
// are tried against the known layouts; anything numeric is interpreted as a
// day count since the excel epoch, fractional days truncated.
func parseDueDate(raw string) (billing.Date, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return billing.Date{}, rowErrorf("Data de vencimento vazia.")
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return billing.DateOf(t), nil
		}
	}

	if serial, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return dateFromSerial(serial), nil
	}

	return billing.Date{}, rowErrorf("Nao foi possivel converter a data: %q", raw)
}

// dateFromSerial floors the serial so fractional days, including negative
// ones, always resolve to the calendar day they fall on.
func dateFromSerial(serial float64) billing.Date {
	return billing.DateOf(excelEpoch.AddDate(0, 0, int(math.Floor(serial))))
}

// sanitizePhone strips everything but digits, preserving a leading "+" when
// the original value carried one.
func sanitizePhone(phone string) string {
	var digits strings.Builder
	for _, ch := range phone {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") && digits.Len() > 0 {
		return "+" + digits.String()
	}
	return digits.String()
}

// sanitizeEmail lower-cases and trims the value. Anything without "@" is
// treated as absent, not as an error.
func sanitizeEmail(email string) string {
	cleaned := strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(cleaned, "@") {
		return ""
	}
	return cleaned
}

// normalizeHeader lower-cases a header cell and keeps only letters and
// digits, so "E-mail", " email " and "EMAIL" all resolve identically.
func normalizeHeader(value string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
