package hexpix

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is a compiled container recorded in the catalog.
type Entry struct {
	ID     int64
	SHA1   string
	Colors int
	Path   string
	Width  int
	Height int
	Data   []byte
}

// Catalog is a SQLite database of compiled containers keyed by the SHA-1 of
// the source image and the number of colors it was reduced to.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens the catalog stored in file, creating the schema if
// necessary.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Scan workers write concurrently, SQLite only allows one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS container (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, colors INTEGER NOT NULL, path TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, colors))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add records e in the catalog and returns its id. If a container for the
// same source and colors already exists its id is returned instead.
func (c *Catalog) Add(e Entry) (int64, error) {
	if _, err := c.db.Exec("INSERT OR IGNORE INTO container (sha1, colors, path, width, height, data) VALUES (?, ?, ?, ?, ?, ?)", e.SHA1, e.Colors, e.Path, e.Width, e.Height, e.Data); err != nil {
		return 0, err
	}

	var id int64
	if err := c.db.QueryRow("SELECT id FROM container WHERE sha1 = ? AND colors = ?", e.SHA1, e.Colors).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Find returns the container bytes compiled from the source with the given
// SHA-1 and colors, or nil if there are none.
func (c *Catalog) Find(sha1 string, colors int) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM container WHERE sha1 = ? AND colors = ?", sha1, colors).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Entries returns every entry ordered by path. Data is not populated.
func (c *Catalog) Entries() ([]Entry, error) {
	rows, err := c.db.Query("SELECT id, sha1, colors, path, width, height FROM container ORDER BY path, colors")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SHA1, &e.Colors, &e.Path, &e.Width, &e.Height); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
