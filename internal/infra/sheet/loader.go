// internal/infra/sheet/loader.go
package sheet

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"billing_reminder_api/internal/domain/billing"
)

// Logical column names, also used in the MissingColumnsError message.
const (
	columnClientName     = "client_name"
	columnWhatsAppNumber = "whatsapp_number"
	columnEmail          = "email"
	columnDueDate        = "due_date"
)

// Header synonym sets, matched after normalizeHeader.
var (
	clientHeaders = headerSet("cliente", "client", "clientenome", "nome", "name")
	phoneHeaders  = headerSet("telefone", "phone", "whatsapp", "numerowhatsapp", "numero")
	emailHeaders  = headerSet("email", "mail", "correio")
	dueHeaders    = headerSet("vencimento", "datavencimento", "data", "duedate")
)

func headerSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Loader reads billing records out of an XLSX spreadsheet. The first
// worksheet is the data source, row 1 is the header.
type Loader struct {
	log *logrus.Logger
}

func NewLoader(log *logrus.Logger) *Loader {
	return &Loader{log: log}
}

// Load returns every successfully parsed record of the spreadsheet, in
// original row order. Rows with missing or unparseable required cells are
// logged and dropped; only file-level and header-level problems are errors.
func (l *Loader) Load(path string) ([]billing.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w em %s", ErrSheetNotFound, path)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: Falha ao abrir %s: %v", ErrSheetUnreadable, path, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s nao contem planilhas", ErrSheetUnreadable, path)
	}

	// RawCellValue keeps date cells as day serials instead of the styled
	// display string, which parseDueDate already understands.
	rows, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: Falha ao ler %s: %v", ErrSheetUnreadable, path, err)
	}
	if len(rows) == 0 {
		return []billing.Record{}, nil
	}

	indexes, err := resolveIndexes(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]billing.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := buildRecord(row, indexes)
		if err != nil {
			l.log.Warnf("Skipping spreadsheet row %d: %v", i+2, err)
			continue
		}
		records = append(records, record)
	}

	l.log.Infof("Loaded %d billing records from %s", len(records), path)
	return records, nil
}

// columnIndexes holds the resolved position of each logical column.
// email stays -1 when the sheet has no email column at all.
type columnIndexes struct {
	client int
	phone  int
	due    int
	email  int
}

func resolveIndexes(header []string) (columnIndexes, error) {
	indexes := columnIndexes{client: -1, phone: -1, due: -1, email: -1}

	for idx, raw := range header {
		normalized := normalizeHeader(raw)
		if normalized == "" {
			continue
		}
		switch {
		case contains(clientHeaders, normalized):
			indexes.client = idx
		case contains(phoneHeaders, normalized):
			indexes.phone = idx
		case contains(emailHeaders, normalized):
			indexes.email = idx
		case contains(dueHeaders, normalized):
			indexes.due = idx
		}
	}

	var missing []string
	if indexes.client < 0 {
		missing = append(missing, columnClientName)
	}
	if indexes.phone < 0 {
		missing = append(missing, columnWhatsAppNumber)
	}
	if indexes.due < 0 {
		missing = append(missing, columnDueDate)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columnIndexes{}, &MissingColumnsError{Columns: missing}
	}
	return indexes, nil
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// cellAt tolerates short rows: excelize trims trailing empty cells.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func buildRecord(row []string, indexes columnIndexes) (billing.Record, error) {
	clientValue := cellAt(row, indexes.client)
	phoneValue := cellAt(row, indexes.phone)
	dueValue := cellAt(row, indexes.due)

	if clientValue == "" || phoneValue == "" || dueValue == "" {
		return billing.Record{}, rowErrorf("Linha com valores obrigatorios vazios.")
	}

	clientName := strings.TrimSpace(clientValue)
	whatsappNumber := sanitizePhone(phoneValue)
	if clientName == "" || whatsappNumber == "" {
		return billing.Record{}, rowErrorf("Linha com cliente ou telefone invalido.")
	}

	dueDate, err := parseDueDate(dueValue)
	if err != nil {
		return billing.Record{}, err
	}

	return billing.Record{
		ClientName:     clientName,
		WhatsAppNumber: whatsappNumber,
		Email:          sanitizeEmail(cellAt(row, indexes.email)),
		DueDate:        dueDate,
	}, nil
}
