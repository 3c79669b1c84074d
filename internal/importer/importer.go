// Package importer loads word catalogs from JSON, CSV or Excel files.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/pkg/models"
)

// Config defines the import configuration
type Config struct {
	FilePath  string // Path to the JSON, CSV or Excel file
	SheetName string // Name of the sheet to import (Excel only)
	StartRow  int    // The row to start importing from, 1-based (CSV/Excel)
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		SheetName: "Sheet1",
		StartRow:  2, // skip the header row
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from a file into the catalog. Words whose
// primary text already exists are skipped, matching re-runs of the same
// file. The file format is chosen by extension: .json, .csv, or Excel.
func ImportWords(ctx context.Context, words *database.WordRepository, config Config) (*Result, error) {
	var (
		parsed []models.Word
		err    error
	)

	switch strings.ToLower(filepath.Ext(config.FilePath)) {
	case ".json":
		parsed, err = parseJSON(config.FilePath)
	case ".csv":
		parsed, err = parseCSV(config)
	default:
		parsed, err = parseExcel(config)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	result.TotalProcessed = len(parsed)
	if len(parsed) == 0 {
		return result, nil
	}

	texts := make([]string, 0, len(parsed))
	for _, w := range parsed {
		texts = append(texts, w.Word)
	}
	existing, err := words.ExistingTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing words: %w", err)
	}

	for _, w := range parsed {
		if w.Word == "" {
			result.Skipped++
			continue
		}
		if existing[w.Word] {
			result.Skipped++
			continue
		}
		word := w
		if err := words.Create(ctx, &word); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", w.Word, err))
			continue
		}
		existing[w.Word] = true
		result.Created++
	}
	return result, nil
}

type jsonWord struct {
	Word          string            `json:"word"`
	Definition    string            `json:"definition"`
	Pronunciation string            `json:"pronunciation"`
	Examples      []string          `json:"examples"`
	Translations  map[string]string `json:"translations"`
}

func parseJSON(path string) ([]models.Word, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw []jsonWord
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	words := make([]models.Word, 0, len(raw))
	for _, w := range raw {
		words = append(words, models.Word{
			Word:          strings.TrimSpace(w.Word),
			Definition:    w.Definition,
			Pronunciation: w.Pronunciation,
			Examples:      models.StringList(w.Examples),
			Translations:  models.Translations(w.Translations),
		})
	}
	return words, nil
}

func parseCSV(config Config) ([]models.Word, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var words []models.Word
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}
		if line < config.StartRow {
			continue
		}
		words = append(words, wordFromRow(row))
	}
	return words, nil
}

func parseExcel(config Config) ([]models.Word, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var words []models.Word
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		words = append(words, wordFromRow(row))
	}
	return words, nil
}

// wordFromRow maps a tabular row to a word. Columns: word, definition,
// pronunciation, examples (";"-separated), translations ("lang=text"
// pairs, ";"-separated).
func wordFromRow(row []string) models.Word {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := models.Word{
		Word:          cell(0),
		Definition:    cell(1),
		Pronunciation: cell(2),
	}

	if examples := cell(3); examples != "" {
		for _, ex := range strings.Split(examples, ";") {
			if ex = strings.TrimSpace(ex); ex != "" {
				word.Examples = append(word.Examples, ex)
			}
		}
	}

	if translations := cell(4); translations != "" {
		word.Translations = models.Translations{}
		for _, pair := range strings.Split(translations, ";") {
			lang, text, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if ok && lang != "" {
				word.Translations[strings.TrimSpace(lang)] = strings.TrimSpace(text)
			}
		}
	}
	return word
}
