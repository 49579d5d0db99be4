// Package export writes mastered vocabulary to spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lingo/internal/gateway"
)

// SheetName is the worksheet holding exported words.
const SheetName = "Vocabulary"

// Header is the first row of every export.
var Header = []string{"Word", "Translation", "Example", "Language"}

// Vocabulary writes words to path. The format follows the extension:
// .csv writes CSV, anything else an Excel workbook.
func Vocabulary(path, language string, words []gateway.VocabularyWord) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(path, language, words)
	}
	return writeExcel(path, language, words)
}

func rows(language string, words []gateway.VocabularyWord) [][]string {
	out := make([][]string, 0, len(words)+1)
	out = append(out, Header)
	for _, w := range words {
		out = append(out, []string{w.Word, w.Translation, w.Example, language})
	}
	return out
}

func writeExcel(path, language string, words []gateway.VocabularyWord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range rows(language, words) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "C", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeCSV(path, language string, words []gateway.VocabularyWord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows(language, words)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
