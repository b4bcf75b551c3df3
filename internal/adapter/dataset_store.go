package adapter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "crycurate/internal/model"
)

// DatasetStore persists and retrieves JSONL dataset rows and comment records.
type DatasetStore interface {
	WriteFileRecords(path m.Path, rows []m.FileRecord) error
	ReadFileRecords(path m.Path) ([]m.FileRecord, error)
	WriteComments(path m.Path, comments []m.CommentRecord) error
}

type jsonlDatasetStore struct{}

// NewDatasetStore constructs a DatasetStore backed by JSONL files.
func NewDatasetStore() DatasetStore {
	return &jsonlDatasetStore{}
}

func (s *jsonlDatasetStore) WriteFileRecords(path m.Path, rows []m.FileRecord) error {
	return writeJSONL(path, len(rows), func(i int) any { return rows[i] })
}

func (s *jsonlDatasetStore) WriteComments(path m.Path, comments []m.CommentRecord) error {
	return writeJSONL(path, len(comments), func(i int) any { return comments[i] })
}

func (s *jsonlDatasetStore) ReadFileRecords(path m.Path) ([]m.FileRecord, error) {
	// #nosec G304 - path comes from operator flags
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	var rows []m.FileRecord

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0

	for scanner.Scan() {
		line++

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var row m.FileRecord
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("malformed dataset row at line %d: %w", line, err)
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return rows, nil
}

func writeJSONL(path m.Path, count int, row func(i int) any) error {
	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// #nosec G304 - path comes from operator flags
	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)

	for i := range count {
		data, err := json.Marshal(row(i))
		if err != nil {
			_ = f.Close()

			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}

		if _, err := w.Write(append(data, '\n')); err != nil {
			_ = f.Close()

			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return f.Close()
}
