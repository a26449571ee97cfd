// Package export saves normalized book lists to disk and loads them back,
// for offline browsing of a neighborhood snapshot. Format is chosen by file
// extension: .parquet or .jsonl.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bookerang/bookerang/internal/books"
	"github.com/parquet-go/parquet-go"
)

// Save writes the list to path.
func Save(path string, list []books.Book) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return saveParquet(path, list)
	case ".jsonl", ".json":
		return saveJSONL(path, list)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// Load reads a snapshot back.
func Load(path string) ([]books.Book, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return loadParquet(path)
	case ".jsonl", ".json":
		return loadJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func saveParquet(path string, list []books.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[books.Book](file)
	if _, err := writer.Write(list); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}

	slog.Debug("Wrote parquet snapshot", "path", path, "rows", len(list))
	return nil
}

func loadParquet(path string) ([]books.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
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

	reader := parquet.NewGenericReader[books.Book](pf)
	defer reader.Close()

	var records []books.Book
	rows := make([]books.Book, 128) // Read in batches
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Read parquet snapshot", "path", path, "rows", len(records))
	return records, nil
}

func saveJSONL(path string, list []books.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, b := range list {
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("failed to write snapshot row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

func loadJSONL(path string) ([]books.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	var records []books.Book
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var b books.Book
		if err := json.Unmarshal(line, &b); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}
	return records, nil
}
