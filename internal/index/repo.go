package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path        string
	ID          string
	Title       string
	Type        string
	Checksum    string
	ConvertedAt time.Time
}

const upsertSQL = `
	INSERT INTO documents (path, id, title, type, checksum, seq, converted_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		id           = excluded.id,
		title        = excluded.title,
		type         = excluded.type,
		checksum     = excluded.checksum,
		seq          = excluded.seq,
		converted_at = excluded.converted_at
`

// ReplaceAll makes the table hold exactly rows, within one transaction.
// Rows keep their position in the slice as processing order. It returns
// the number of stale rows removed.
func (db *DB) ReplaceAll(rows []DocumentRow) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	stmt, err := tx.Prepare(upsertSQL)
	if err != nil {
		return 0, fmt.Errorf("index: prepare upsert: %w", err)
	}
	defer stmt.Close()

	keep := make(map[string]struct{}, len(rows))
	for i, d := range rows {
		if _, err := stmt.Exec(d.Path, d.ID, d.Title, d.Type, d.Checksum, i, d.ConvertedAt); err != nil {
			return 0, fmt.Errorf("index: upsert %s: %w", d.Path, err)
		}
		keep[d.Path] = struct{}{}
	}

	existing, err := queryPaths(tx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range existing {
		if _, ok := keep[p]; ok {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM documents WHERE path = ?`, p); err != nil {
			return 0, fmt.Errorf("index: delete %s: %w", p, err)
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("index: commit: %w", err)
	}
	return removed, nil
}

func queryPaths(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query(`SELECT path FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: list paths: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LookupTitle returns the identifier of the document with the given title.
// When several share it, the one processed last wins.
func (db *DB) LookupTitle(title string) (string, bool, error) {
	var id string
	err := db.conn.QueryRow(
		`SELECT id FROM documents WHERE title = ? ORDER BY seq DESC LIMIT 1`, title,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("index: lookup title: %w", err)
	}
	return id, true, nil
}

// AllChecksums returns path → checksum for every document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Count returns the number of documents.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
