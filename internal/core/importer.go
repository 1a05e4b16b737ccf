package core

// importer.go turns an uploaded file into raw rows.
//
// Two formats are supported, chosen by file extension:
//
//   - delimited text (.csv): first record is the header, blank lines skipped
//   - spreadsheet (.xlsx, .xlsm): first worksheet only, first row is the header
//
// Rows are kept as string maps keyed by header name; no coercion happens here.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format names used in ParseError and ParsedFile.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Row is one data row from an import file.
type Row struct {
	Line   int               // 1-based line/row in the source file (header is 1)
	Fields map[string]string // Column name -> raw cell value
}

// NewRow builds a row from a column map, mostly for tests and programmatic imports.
func NewRow(fields map[string]string) Row {
	return Row{Fields: fields}
}

// Get returns the raw value for a column, or "" when absent.
func (r Row) Get(col string) string {
	return r.Fields[col]
}

// Value returns the trimmed value for a column.
func (r Row) Value(col string) string {
	return strings.TrimSpace(r.Fields[col])
}

// Has reports whether the column is present and non-blank after trimming.
func (r Row) Has(col string) bool {
	return r.Value(col) != ""
}

// ParsedFile is the result of reading an import file.
type ParsedFile struct {
	Format string
	Header []string
	Rows   []Row
}

// ExtensionFormat maps a file name to its import format.
// Returns a FormatError for unsupported extensions.
func ExtensionFormat(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", &FormatError{Ext: ext}
	}
}

// ParseFile reads an import file, choosing the parser by extension.
func ParseFile(name string, r io.Reader) (*ParsedFile, error) {
	format, err := ExtensionFormat(name)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return ParseXLSX(r)
	}
	return ParseCSV(r)
}

// ParseCSV reads comma-separated text with a header row.
func ParseCSV(r io.Reader) (*ParsedFile, error) {
	cr := csv.NewReader(WrapForCSV(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var header []string
	for header == nil {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Format: FormatCSV, Err: ErrEmptyFile}
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Err: err}
		}
		if !isEmptyRow(rec) {
			header = cleanHeader(rec)
		}
	}

	out := &ParsedFile{Format: FormatCSV, Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Err: err}
		}
		if isEmptyRow(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		out.Rows = append(out.Rows, rowFromCells(header, rec, line))
	}
	return out, nil
}

// ParseXLSX reads the first worksheet of a spreadsheet with a header row.
func ParseXLSX(r io.Reader) (*ParsedFile, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: errors.New("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}

	headerAt := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: ErrEmptyFile}
	}

	header := cleanHeader(rows[headerAt])
	out := &ParsedFile{Format: FormatXLSX, Header: header}
	for i := headerAt + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		out.Rows = append(out.Rows, rowFromCells(header, rows[i], i+1))
	}
	return out, nil
}

// rowFromCells zips a header with a record. Missing trailing cells become ""
// and cells under blank headers are dropped.
func rowFromCells(header, cells []string, line int) Row {
	fields := make(map[string]string, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		if _, seen := fields[col]; seen {
			continue // first occurrence of a repeated column wins
		}
		if i < len(cells) {
			fields[col] = CleanCell(cells[i])
		} else {
			fields[col] = ""
		}
	}
	return Row{Line: line, Fields: fields}
}

func cleanHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.Trim(CleanCell(c), `"'`)
	}
	return out
}

// CleanCell removes spreadsheet artifacts from a cell value:
// surrounding whitespace and the Excel text-forcing wrapper ="...".
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return s
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
