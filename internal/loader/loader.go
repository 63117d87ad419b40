// Package loader reads the delimiter-separated row sources the ledger is
// seeded from. Callers may point it at external files; without a path it
// serves the embedded seed data.
package loader

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

//go:embed data
var seedFS embed.FS

// Default delimiter of the seed files.
const Separator = ':'

// Rows reads one row per record from r, fields split on sep.
func Rows(r io.Reader, sep rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return rows, nil
}

// File reads rows from a file on disk.
func File(path string, sep rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Rows(f, sep)
}

// Default reads rows from an embedded seed file ("banks.txt", "iban.txt" or
// "rates.txt").
func Default(name string) ([][]string, error) {
	f, err := seedFS.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("opening seed %s: %w", name, err)
	}
	defer f.Close()

	return Rows(f, Separator)
}

// FileOrDefault reads rows from path when it is set, otherwise from the
// embedded seed file.
func FileOrDefault(path, name string) ([][]string, error) {
	if path != "" {
		return File(path, Separator)
	}
	return Default(name)
}
