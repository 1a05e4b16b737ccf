package core

// export.go flattens records back into tabular form.
//
// The output uses the same column names the importer reads, so an exported
// file can be re-imported: lists become comma-joined cells and flags become
// TRUE/FALSE. Identifiers are exported for reference but ignored on import.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the worksheet written by WriteXLSX.
const ExportSheetName = "Lawyers"

// ExportTable returns the header followed by one row per record.
func ExportTable(records []Record) [][]string {
	table := make([][]string, 0, len(records)+1)
	table = append(table, ExportColumns())
	for _, r := range records {
		table = append(table, exportRow(r))
	}
	return table
}

func exportRow(r Record) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		JoinList(r.PracticeAreas),
		strconv.Itoa(r.Experience),
		r.Location,
		r.Phone,
		r.Email,
		FormatNumber(r.Rating),
		strconv.Itoa(r.Reviews),
		r.Education,
		r.Bio,
		JoinList(r.Specializations),
		r.Website,
		r.BarNumber,
		JoinList(r.Languages),
		r.HourlyRate,
		string(r.Availability),
		FormatBool(r.Verified),
		r.Image,
	}
}

// WriteCSV writes records as comma-separated text.
func WriteCSV(w io.Writer, records []Record) error {
	return writeCSVTable(w, ExportTable(records))
}

// WriteXLSX writes records to a single-sheet workbook.
func WriteXLSX(w io.Writer, records []Record) error {
	return writeXLSXTable(w, ExportTable(records))
}

// WriteTemplate writes an import template (header plus one sample row) in the given format.
func WriteTemplate(w io.Writer, format string) error {
	header := make([]string, len(FieldSpecs))
	sample := make([]string, len(FieldSpecs))
	for i, spec := range FieldSpecs {
		header[i] = spec.Name
		sample[i] = spec.Example
	}
	table := [][]string{header, sample}

	switch format {
	case FormatCSV:
		return writeCSVTable(w, table)
	case FormatXLSX:
		return writeXLSXTable(w, table)
	default:
		return &FormatError{Ext: "." + format}
	}
}

func writeCSVTable(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeXLSXTable(w io.Writer, table [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for an export format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
