// Package pointdb stores ranked point sets in an SQLite database, so that
// progressive prefixes can be queried without loading the whole set.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package pointdb

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eak1mov/go-bluenoise/bluenoise"
	"github.com/eak1mov/go-bluenoise/points"
)

var ErrFinalized = errors.New("bluenoise: point database already finalized")

type Writer struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	logger *slog.Logger
	count  int
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new database at filePath and prepares it for writing points.
// All points are inserted in a single transaction committed by Finalize.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE points (
			rank REAL,
			x REAL,
			y REAL,
			cell INTEGER
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare("INSERT INTO points (rank, x, y, cell) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return &Writer{db: db, tx: tx, stmt: stmt, logger: config.Logger}, nil
}

// Close releases the database. Points not yet committed by Finalize are discarded.
func (w *Writer) Close() error {
	err := w.stmt.Close()
	if w.tx != nil {
		err = errors.Join(err, w.tx.Rollback())
	}
	return errors.Join(err, w.db.Close())
}

func (w *Writer) WriteMetadata(name, value string) error {
	if w.tx == nil {
		return ErrFinalized
	}
	_, err := w.tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", name, value)
	return err
}

func (w *Writer) WritePoint(p bluenoise.Point) error {
	if w.tx == nil {
		return ErrFinalized
	}
	_, err := w.stmt.Exec(p.Rank, p.X, p.Y, points.EncodeCell(p.X, p.Y))
	if err == nil {
		w.count++
	}
	return err
}

func (w *Writer) WritePoints(pts []bluenoise.Point) error {
	for _, p := range pts {
		if err := w.WritePoint(p); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Finalize() error {
	if w.tx == nil {
		return ErrFinalized
	}
	w.logger.Debug("bluenoise: committing points", "count", w.count)
	if err := w.tx.Commit(); err != nil {
		return err
	}
	w.tx = nil

	w.logger.Debug("bluenoise: creating index")
	if _, err := w.db.Exec("CREATE INDEX rank_index ON points (rank)"); err != nil {
		return err
	}
	_, err := w.db.Exec("CREATE INDEX cell_index ON points (cell)")

	w.logger.Debug("bluenoise: done!")
	return err
}
