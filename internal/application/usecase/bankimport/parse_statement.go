// Package bankimport contains bank statement import use cases.
//
// Statements arrive as CSV exports from the user's bank. Column naming and
// ordering differ per bank, so the parser resolves columns from the header
// row instead of assuming fixed positions.
package bankimport

import (
	"encoding/csv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// statementRow is one parsed CSV row before validation.
type statementRow struct {
	Line        int // 1-based line number in the file, header included
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	ParseError  string // non-empty when the row could not be parsed
}

// Header aliases seen across bank exports. Matching is case-insensitive.
var (
	dateHeaders        = []string{"date", "datum", "transaction date", "boekdatum"}
	descriptionHeaders = []string{"description", "omschrijving", "naam", "name", "payee"}
	amountHeaders      = []string{"amount", "bedrag", "value"}
	kindHeaders        = []string{"kind", "type", "af bij", "debit/credit"}
)

// Date layouts tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"20060102",
}

// columnIndexes locates the relevant columns in a header row.
type columnIndexes struct {
	date        int
	description int
	amount      int
	kind        int // -1 when absent, sign of amount decides then
}

// parseStatement reads the whole CSV and returns parsed rows. Rows that fail
// to parse carry a ParseError instead of aborting the statement.
func parseStatement(data string) ([]statementRow, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeMalformedStatement,
			"statement is not valid CSV",
			domainerror.ErrMalformedStatement,
		)
	}

	if len(records) < 2 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEmptyStatement,
			"statement contains no rows",
			domainerror.ErrEmptyStatement,
		)
	}

	columns, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]statementRow, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, parseRow(record, columns, i+2))
	}

	return rows, nil
}

// resolveColumns maps the header row to column positions.
func resolveColumns(header []string) (columnIndexes, error) {
	columns := columnIndexes{date: -1, description: -1, amount: -1, kind: -1}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch {
		case columns.date == -1 && matchesHeader(name, dateHeaders):
			columns.date = i
		case columns.description == -1 && matchesHeader(name, descriptionHeaders):
			columns.description = i
		case columns.amount == -1 && matchesHeader(name, amountHeaders):
			columns.amount = i
		case columns.kind == -1 && matchesHeader(name, kindHeaders):
			columns.kind = i
		}
	}

	if columns.date == -1 || columns.description == -1 || columns.amount == -1 {
		return columns, domainerror.NewImportError(
			domainerror.ErrCodeMissingStatementColumns,
			"statement must have date, description and amount columns",
			domainerror.ErrMissingStatementColumns,
		)
	}

	return columns, nil
}

func matchesHeader(name string, aliases []string) bool {
	for _, alias := range aliases {
		if name == alias {
			return true
		}
	}
	return false
}

// parseRow converts one CSV record into a statementRow.
func parseRow(record []string, columns columnIndexes, line int) statementRow {
	row := statementRow{Line: line}

	if columns.date >= len(record) || columns.description >= len(record) || columns.amount >= len(record) {
		row.ParseError = "row has fewer columns than the header"
		return row
	}

	date, ok := parseDate(record[columns.date])
	if !ok {
		row.ParseError = "unrecognized date format"
		return row
	}
	row.Date = date

	row.Description = strings.TrimSpace(record[columns.description])
	if row.Description == "" {
		row.ParseError = "empty description"
		return row
	}

	amount, err := parseAmount(record[columns.amount])
	if err != nil {
		row.ParseError = "unrecognized amount format"
		return row
	}

	// Direction comes from the kind column when present, otherwise from the
	// amount's sign. The stored amount is always non-negative.
	row.Kind = entity.TransactionKindExpense
	if columns.kind != -1 && columns.kind < len(record) {
		if isIncomeMarker(record[columns.kind]) {
			row.Kind = entity.TransactionKindIncome
		}
	} else if amount.IsPositive() {
		row.Kind = entity.TransactionKindIncome
	}
	row.Amount = amount.Abs().Round(2)

	return row
}

func parseDate(cell string) (time.Time, bool) {
	value := strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseAmount accepts both "1234.56" and the European "1.234,56".
func parseAmount(cell string) (decimal.Decimal, error) {
	value := strings.TrimSpace(cell)
	value = strings.TrimPrefix(value, "€")
	value = strings.TrimSpace(value)
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}
	return decimal.NewFromString(value)
}

// isIncomeMarker recognizes credit markers used by bank exports.
func isIncomeMarker(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "income", "credit", "bij", "c", "cr":
		return true
	}
	return false
}
