package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aidassist/healthqa/internal/domain/retrieval"
)

// expected column order of the corpus table.
var columns = []string{"question", "answer", "source", "disease"}

// LoadCSV reads the corpus from a four-column CSV table. Broken rows are
// skipped, short rows are padded with empty strings and every value is
// kept as text, so a loaded entry always has all four fields populated.
// A missing or unreadable file returns an error; the caller is expected
// to substitute an empty corpus and keep serving.
func LoadCSV(path string) ([]retrieval.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer file.Close()

	return parse(file)
}

func parse(r io.Reader) ([]retrieval.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var entries []retrieval.Entry
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// skip broken rows, same as the dataset cleaning step
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("read corpus row: %w", err)
		}
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		entries = append(entries, toEntry(record))
	}
	return entries, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(record[0]), columns[0])
}

func toEntry(record []string) retrieval.Entry {
	padded := make([]string, len(columns))
	for i := range padded {
		if i < len(record) {
			padded[i] = strings.TrimSpace(record[i])
		}
	}
	return retrieval.Entry{
		Question: padded[0],
		Answer:   padded[1],
		Source:   padded[2],
		Disease:  padded[3],
	}
}
