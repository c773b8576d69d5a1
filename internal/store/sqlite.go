package store

import (
	"database/sql"
	"fmt"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/point-o/sham/internal/value"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS variables (
	name  TEXT PRIMARY KEY,
	doc   TEXT NOT NULL
)`

// SaveDB replaces the variables table at path with the given snapshot,
// in a single transaction. Each row stores one variable's kind-tagged
// record, serialized the same way as the YAML backend. Returns the count
// of variables skipped for having no serialized form.
func SaveDB(path string, vars map[string]value.Value) (skipped int, err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createTableSQL); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM variables`); err != nil {
		return 0, fmt.Errorf("clearing table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO variables (name, doc) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for name, v := range vars {
		rec, ok := encode(v)
		if !ok {
			skipped++
			continue
		}
		doc, err := yaml.Marshal(rec)
		if err != nil {
			return skipped, fmt.Errorf("encoding %q: %w", name, err)
		}
		if _, err := stmt.Exec(name, string(doc)); err != nil {
			return skipped, fmt.Errorf("inserting %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return skipped, fmt.Errorf("committing: %w", err)
	}
	return skipped, nil
}

// LoadDB reads back a snapshot written by SaveDB.
func LoadDB(path string) (map[string]value.Value, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name, doc FROM variables`)
	if err != nil {
		return nil, fmt.Errorf("querying variables: %w", err)
	}
	defer rows.Close()

	vars := make(map[string]value.Value)
	for rows.Next() {
		var name, doc string
		if err := rows.Scan(&name, &doc); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var rec record
		if err := yaml.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		v, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = v
	}
	return vars, rows.Err()
}
