// Package recordio reads financial disclosure records from JSON files.
package recordio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
)

// StdinSource is the source name that reads a record from standard input.
const StdinSource = "-"

// recordExt is the extension of record files picked up from directories.
const recordExt = ".json"

// ErrNoRecords is returned when a directory holds no record files.
var ErrNoRecords = errors.New("no record files found")

// FileLoader loads records from the local filesystem.
type FileLoader struct {
	stdin io.Reader
}

var _ contract.RecordLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a loader that reads files, and stdin for StdinSource.
func NewFileLoader() *FileLoader {
	return &FileLoader{stdin: os.Stdin}
}

// Load implements the RecordLoader interface.
func (l *FileLoader) Load(ctx context.Context, source string) (*schema.FinancialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == StdinSource {
		record, err := Decode(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to load record from stdin: %w", err)
		}
		return record, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", source, err)
	}
	defer func() { _ = file.Close() }()

	record, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", source, err)
	}
	return record, nil
}

// Expand implements the RecordLoader interface. Directory entries are returned
// in lexical order and subdirectories are not descended into.
func (l *FileLoader) Expand(ctx context.Context, source string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == StdinSource {
		return []string{source}, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", source, err)
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", source, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), recordExt) {
			continue
		}
		paths = append(paths, filepath.Join(source, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecords, source)
	}
	sort.Strings(paths)
	return paths, nil
}

// ExpandAll resolves every source with the loader and concatenates the results.
func ExpandAll(ctx context.Context, loader contract.RecordLoader, sources []string) ([]string, error) {
	var all []string
	for _, source := range sources {
		paths, err := loader.Expand(ctx, source)
		if err != nil {
			return nil, err
		}
		all = append(all, paths...)
	}
	return all, nil
}

// Decode reads one JSON record. Unknown fields are ignored and trailing data is rejected.
func Decode(r io.Reader) (*schema.FinancialRecord, error) {
	decoder := json.NewDecoder(r)
	var record schema.FinancialRecord
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("failed to decode JSON: unexpected data after record")
	}
	return &record, nil
}
