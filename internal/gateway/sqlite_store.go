package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"mis-dashboard/internal/domain"
)

// SQLiteStore keeps each source dataset in a table of the same name, every
// column stored as TEXT. It implements the DatasetReader interface and can
// be loaded from any other reader with Import.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath. Use ":memory:" for an
// in-memory database. Tables are created by Replace, not on open.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Read returns the rows of the dataset's table matching every filter, in
// insertion order. NULL columns are left out of the record.
func (s *SQLiteStore) Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error) {
	if !dataset.IsSource() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, dataset)
	}

	columns, err := s.columns(ctx, dataset)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + quoteIdent(string(dataset))
	args := make([]any, 0, len(filters))
	if len(filters) > 0 {
		conds := make([]string, len(filters))
		for i, f := range filters {
			if !columns[f.Field] {
				return nil, fmt.Errorf("dataset %s has no field %q", dataset, f.Field)
			}
			conds[i] = quoteIdent(f.Field) + " = ?"
			args = append(args, f.Value)
		}
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", dataset, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", dataset, err)
	}

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		values := make([]sql.NullString, len(names))
		dest := make([]any, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", dataset, err)
		}

		rec := make(domain.RawRecord, len(names))
		for i, name := range names {
			if values[i].Valid {
				rec[name] = values[i].String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", dataset, err)
	}
	return records, nil
}

// Replace drops and recreates the dataset's table from records. Columns are
// the union of record fields in first-seen order.
func (s *SQLiteStore) Replace(ctx context.Context, dataset domain.Dataset, records []domain.RawRecord) error {
	if !dataset.IsSource() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDataset, dataset)
	}

	var columns []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, field := range sortedFields(rec) {
			if !seen[field] {
				seen[field] = true
				columns = append(columns, field)
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	table := quoteIdent(string(dataset))
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("failed to drop %s: %w", dataset, err)
	}

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	if len(defs) == 0 {
		defs = []string{quoteIdent(domain.FieldPostDate) + " TEXT"}
	}
	if _, err := tx.ExecContext(ctx, "CREATE TABLE "+table+" ("+strings.Join(defs, ", ")+")"); err != nil {
		return fmt.Errorf("failed to create %s: %w", dataset, err)
	}

	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		marks := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = quoteIdent(c)
			marks[i] = "?"
		}
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" ("+strings.Join(quoted, ", ")+") VALUES ("+strings.Join(marks, ", ")+")")
		if err != nil {
			return fmt.Errorf("failed to prepare insert into %s: %w", dataset, err)
		}
		defer stmt.Close()

		for _, rec := range records {
			args := make([]any, len(columns))
			for i, c := range columns {
				if v, ok := rec[c]; ok && v != nil {
					args[i] = domain.FormatValue(v)
				}
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", dataset, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", dataset, err)
	}
	return nil
}

// Import copies every source dataset from src into the store and returns
// the number of rows written per dataset.
func (s *SQLiteStore) Import(ctx context.Context, src datasetSource) (map[domain.Dataset]int, error) {
	counts := make(map[domain.Dataset]int, len(domain.SourceDatasets))
	for _, ds := range domain.SourceDatasets {
		records, err := src.Read(ctx, ds, nil)
		if err != nil {
			return counts, fmt.Errorf("could not read %s: %w", ds, err)
		}
		if err := s.Replace(ctx, ds, records); err != nil {
			return counts, err
		}
		counts[ds] = len(records)
	}
	return counts, nil
}

func (s *SQLiteStore) columns(ctx context.Context, dataset domain.Dataset) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", string(dataset))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", dataset, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", dataset, err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", dataset, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s does not exist", domain.ErrDatasetUnavailable, dataset)
	}
	return cols, nil
}

type datasetSource interface {
	Read(ctx context.Context, dataset domain.Dataset, filters []domain.Filter) ([]domain.RawRecord, error)
}

func sortedFields(rec domain.RawRecord) []string {
	fields := make([]string, 0, len(rec))
	for k := range rec {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
