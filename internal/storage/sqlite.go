package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sidebird/arcmark/internal/model"
)

const currentSchemaVersion = 1

// Entry is one archived bookmark row.
type Entry struct {
	ID         string
	Space      string
	Folder     string // "" for standalone bookmarks
	Title      string
	URL        string
	ArchivedAt time.Time
}

// Library persists archived bookmarks in a SQLite database.
type Library struct {
	db   *sql.DB
	path string
}

// NewLibrary opens (creating if needed) the library at the given path.
func NewLibrary(path string) (*Library, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	l := &Library{db: db, path: path}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return l, nil
}

// Path returns the database file path.
func (l *Library) Path() string {
	return l.path
}

// Close closes the database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

// migrate runs database migrations.
func (l *Library) migrate() error {
	var version int
	err := l.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := l.migrateV1(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Library) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		space TEXT NOT NULL,
		folder TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		archived_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

	CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
	DELETE FROM schema_version;
	`
	if _, err := l.db.Exec(schema); err != nil {
		return err
	}
	_, err := l.db.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}

// Archive stores every bookmark of the given spaces, skipping URLs the
// library already holds. Returns how many were added and skipped.
func (l *Library) Archive(spaces []model.Space) (added, skipped int, err error) {
	tx, err := l.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	insert := func(space, folder string, b model.Bookmark) error {
		var exists int
		err := tx.QueryRow("SELECT COUNT(*) FROM bookmarks WHERE url = ?", b.URL).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			skipped++
			return nil
		}
		_, err = tx.Exec(
			"INSERT INTO bookmarks (id, space, folder, title, url, archived_at) VALUES (?, ?, ?, ?, ?, ?)",
			model.GenerateUUID(), space, folder, b.Title, b.URL, now,
		)
		if err != nil {
			return err
		}
		added++
		return nil
	}

	for _, space := range spaces {
		for _, folder := range space.Folders {
			for _, b := range folder.Bookmarks {
				if err := insert(space.Title, folder.Title, b); err != nil {
					return 0, 0, err
				}
			}
		}
		for _, b := range space.Bookmarks {
			if err := insert(space.Title, "", b); err != nil {
				return 0, 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

// List returns all archived entries in insertion order.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query(
		"SELECT id, space, folder, title, url, archived_at FROM bookmarks ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var archivedAt int64
		if err := rows.Scan(&e.ID, &e.Space, &e.Folder, &e.Title, &e.URL, &archivedAt); err != nil {
			return nil, err
		}
		e.ArchivedAt = time.Unix(archivedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HasURL reports whether the library already holds the given URL.
func (l *Library) HasURL(url string) (bool, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM bookmarks WHERE url = ?", url).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DefaultLibraryPath returns the default library path: ~/.config/arcmark/library.db
func DefaultLibraryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "arcmark", "library.db"), nil
}
