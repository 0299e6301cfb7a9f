package pointdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-bluenoise/bluenoise"
)

type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens an existing point database read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT x, y, rank FROM points ORDER BY rank LIMIT ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadPrefix returns the n lowest-ranked points in rank order.
func (r *Reader) ReadPrefix(n int) ([]bluenoise.Point, error) {
	rows, err := r.stmt.Query(n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []bluenoise.Point
	for rows.Next() {
		var p bluenoise.Point
		if err := rows.Scan(&p.X, &p.Y, &p.Rank); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// VisitPoints calls visitor for every point whose Hilbert cell lies in [lo, hi].
func (r *Reader) VisitPoints(lo, hi uint32, visitor func(bluenoise.Point) error) error {
	rows, err := r.db.Query("SELECT x, y, rank FROM points WHERE cell BETWEEN ? AND ? ORDER BY cell", lo, hi)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p bluenoise.Point
		if err := rows.Scan(&p.X, &p.Y, &p.Rank); err != nil {
			return err
		}
		if err := visitor(p); err != nil {
			return err
		}
	}

	return rows.Err()
}
