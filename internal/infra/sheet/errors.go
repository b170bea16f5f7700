// internal/infra/sheet/errors.go
package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// Sheet-level errors abort the whole run and surface to the caller.
// Row-level problems never do; those rows are logged and dropped.
var (
	ErrSheetNotFound   = errors.New("Planilha nao encontrada")
	ErrSheetUnreadable = errors.New("Falha ao ler a planilha")
)

// MissingColumnsError reports required header columns that could not be
// resolved against the known synonym sets.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Colunas obrigatorias ausentes no cabecalho: " + strings.Join(e.Columns, ", ")
}

// rowError marks a data row that must be skipped. It never leaves the loader.
type rowError struct {
	reason string
}

func (e *rowError) Error() string {
	return e.reason
}

func rowErrorf(format string, args ...any) error {
	return &rowError{reason: fmt.Sprintf(format, args...)}
}
