package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// SQLite stores each record as a JSON attribute map in one table.
type SQLite struct {
	db    *sqlx.DB
	table string
}

// OpenSQLite connects to the database file and creates the table if needed.
func OpenSQLite(fname, table string) (*SQLite, error) {
	db, err := sqlx.Connect("sqlite3", fname)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s, err := NewSQLite(db, table)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return s, nil
}

func NewSQLite(db *sqlx.DB, table string) (*SQLite, error) {
	s := &SQLite{db: db, table: quoteIdent(table)}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + s.table + `(
		"id" varchar not null primary key,
		"attributes" text not null
	)`)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	return s, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, id string) (record.Record, error) {
	var attrs string

	err := s.db.GetContext(ctx, &attrs, `SELECT "attributes" FROM `+s.table+` WHERE "id" = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, nil
	}
	if err != nil {
		return nil, fail("get", err)
	}

	return unmarshalAttributes(attrs)
}

func (s *SQLite) Put(ctx context.Context, r record.Record) error {
	id, err := keyOf(r)
	if err != nil {
		return fail("put", err)
	}

	attrs, err := json.Marshal(r)
	if err != nil {
		return fail("put", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO `+s.table+`("id", "attributes") VALUES (?, ?)`,
		id, string(attrs),
	)
	if err != nil {
		return fail("put", err)
	}

	return nil
}

func (s *SQLite) Scan(ctx context.Context, limit int) ([]record.Record, error) {
	rows := []string{}

	err := s.db.SelectContext(ctx, &rows, `SELECT "attributes" FROM `+s.table+` LIMIT ?`, limit)
	if err != nil {
		return nil, fail("scan", err)
	}

	records := make([]record.Record, 0, len(rows))
	for _, attrs := range rows {
		r, err := unmarshalAttributes(attrs)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, nil
}

func unmarshalAttributes(attrs string) (record.Record, error) {
	r := record.Record{}
	if err := json.Unmarshal([]byte(attrs), &r); err != nil {
		return nil, fail("decode", err)
	}

	return r, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
