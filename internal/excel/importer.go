// Package excel imports custom words in bulk from spreadsheet files.
// Both .xlsx (via excelize) and .csv files are accepted; rows hold
// word, translation and an optional CEFR level.
package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rzaytsev/vocab-api/internal/domain"
	"github.com/rzaytsev/vocab-api/internal/service"
)

// ImportConfig describes where the word data sits in the file.
type ImportConfig struct {
	FilePath          string
	WordColumn        string // column letter with the word
	TranslationColumn string // column letter with the translation
	LevelColumn       string // column letter with the CEFR level, may be absent
	SheetName         string // sheet to read, .xlsx only
	StartRow          int    // first data row, 1-based
	DefaultLevel      domain.Level
}

// DefaultImportConfig returns the conventional layout: word in A,
// translation in B, level in C, data starting below a header row.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:          path,
		WordColumn:        "A",
		TranslationColumn: "B",
		LevelColumn:       "C",
		SheetName:         "Sheet1",
		StartRow:          2,
		DefaultLevel:      domain.LevelA1,
	}
}

// ImportResult summarizes one import run. Rows that collide with existing
// vocabulary are skipped, not errors; malformed rows are reported per row.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer feeds spreadsheet rows into the learning service.
type Importer struct {
	learning *service.LearningService
	logger   *slog.Logger
}

// NewImporter creates an importer.
func NewImporter(learning *service.LearningService, log *slog.Logger) *Importer {
	if learning == nil {
		panic("learning cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		learning: learning,
		logger:   log.With(slog.String("component", "excel_importer")),
	}
}

// ImportWords reads the configured file and adds each row as a custom word.
// The file format is picked by extension.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", config.SheetName, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		im.processRow(ctx, row, config, result, i+1)
	}

	im.logger.Info("spreadsheet import finished",
		slog.String("path", config.FilePath),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		im.processRow(ctx, row, config, result, rowNum)
	}

	im.logger.Info("CSV import finished",
		slog.String("path", config.FilePath),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)))
	return result, nil
}

func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *ImportResult, rowNum int) {
	result.TotalProcessed++

	var word, translation, levelText string
	if idx := columnToIndex(config.WordColumn); idx >= 0 && idx < len(row) {
		word = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.TranslationColumn); idx >= 0 && idx < len(row) {
		translation = strings.TrimSpace(row[idx])
	}
	if config.LevelColumn != "" {
		if idx := columnToIndex(config.LevelColumn); idx >= 0 && idx < len(row) {
			levelText = strings.TrimSpace(row[idx])
		}
	}

	if word == "" || translation == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: word and translation are required", rowNum))
		return
	}

	level := config.DefaultLevel
	if levelText != "" {
		parsed, err := domain.ParseLevel(levelText)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown level %q", rowNum, levelText))
			return
		}
		level = parsed
	}

	_, err := im.learning.AddCustom(ctx, word, translation, level)
	switch {
	case errors.Is(err, service.ErrWordExists):
		result.Skipped++
	case err != nil:
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
	default:
		result.Created++
	}
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
