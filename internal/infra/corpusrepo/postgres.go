package corpusrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidassist/healthqa/internal/domain/retrieval"
)

// PostgresSource loads the corpus from a Postgres table instead of the
// CSV file. Rows are ordered by id so positional identity stays stable
// across restarts.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Load fetches every corpus entry; null columns coerce to empty text.
func (s *PostgresSource) Load(ctx context.Context) ([]retrieval.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(question, ''), COALESCE(answer, ''), COALESCE(source, ''), COALESCE(disease, '')
		FROM corpus_entries
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var entries []retrieval.Entry
	for rows.Next() {
		var entry retrieval.Entry
		if err := rows.Scan(&entry.Question, &entry.Answer, &entry.Source, &entry.Disease); err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read corpus rows: %w", err)
	}
	return entries, nil
}
