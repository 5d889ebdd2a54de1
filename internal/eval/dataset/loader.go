package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Loader reads labelled queries from a YAML, JSONL or Parquet file
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads every record from the dataset file
func (l *Loader) Load() ([]LabeledQuery, error) {
	return l.LoadSample(-1)
}

// LoadSample loads at most limit records; a negative limit loads everything
func (l *Loader) LoadSample(limit int) ([]LabeledQuery, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var (
		records []LabeledQuery
		err     error
	)
	switch ext {
	case ".parquet":
		records, err = l.loadParquet(limit)
	case ".jsonl", ".json":
		records, err = l.loadJSONL(limit)
	case ".yaml", ".yml":
		records, err = l.loadYAML(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i+1, err)
		}
	}
	return records, nil
}

// loadYAML loads a YAML list of records
func (l *Loader) loadYAML(limit int) ([]LabeledQuery, error) {
	data, err := os.ReadFile(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	var records []LabeledQuery
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
	}

	slog.Debug("Finished reading YAML file", "total_records", len(records))
	return truncate(records, limit), nil
}

// loadJSONL loads records from a JSONL file
func (l *Loader) loadJSONL(limit int) ([]LabeledQuery, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []LabeledQuery
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() && (limit < 0 || len(records) < limit) {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var record LabeledQuery
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(records), "total_lines", lineNum)

	return records, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet(limit int) ([]LabeledQuery, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[LabeledQuery](pf)
	defer reader.Close()

	var records []LabeledQuery
	rows := make([]LabeledQuery, 128) // Read in batches

	for limit < 0 || len(records) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))

	return truncate(records, limit), nil
}

func truncate(records []LabeledQuery, limit int) []LabeledQuery {
	if limit >= 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
