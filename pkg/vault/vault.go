// Package vault stores named secrets in an SQLite database, each entry
// encrypted with the ARX-128/8 pipeline and kept as base64 text.
package vault

import (
	"database/sql"
	"errors"
	"fmt"
	"path"
	"time"

	"arxcrypt/pkg/appdir"
	"arxcrypt/pkg/log"
	"arxcrypt/pkg/transform"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get and Delete when no entry has the given
// name.
var ErrNotFound = errors.New("vault: entry not found")

// Entry describes a stored secret without exposing its plaintext.
type Entry struct {
	Name      string
	CreatedAt time.Time
}

// Vault is an encrypted secret store backed by a single SQLite file.
// A Vault is safe for concurrent use; database/sql serializes access.
type Vault struct {
	db        *sql.DB
	putStmt   *sql.Stmt
	processor *transform.PayloadProcessor
}

type options struct {
	compress bool
}

// Option configures a Vault at Open time.
type Option func(*options)

// WithCompression prepends a zstd stage to the pipeline so large secrets
// shrink before encryption.
func WithCompression() Option {
	return func(o *options) { o.compress = true }
}

// DefaultPath returns the vault database location under the per-user
// application directory.
func DefaultPath() string {
	return path.Join(appdir.AppDir(), "vault.db")
}

// Open opens (or creates) the vault database at dbPath and derives the
// encryption pipeline from passphrase.
func Open(dbPath, passphrase string, opts ...Option) (*Vault, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	stages := []transform.Transform{}
	if o.compress {
		z, err := transform.NewZstdTransform(zstd.SpeedFastest)
		if err != nil {
			return nil, fmt.Errorf("vault: failed to create zstd stage: %w", err)
		}
		stages = append(stages, z)
	}
	stages = append(stages, transform.NewARXTransform(passphrase), transform.NewBase64Transform())
	processor, err := transform.NewPayloadProcessor(stages)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to build pipeline: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("vault: failed to ping sqlite db %s: %w", dbPath, err)
	}

	createTableSQL := `
    CREATE TABLE IF NOT EXISTS secrets (
        name TEXT PRIMARY KEY,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
        ciphertext TEXT NOT NULL
    );`
	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("vault: failed to create secrets table: %w", err)
	}

	putStmt, err := db.Prepare(`INSERT INTO secrets (name, ciphertext) VALUES (?, ?)
        ON CONFLICT(name) DO UPDATE SET ciphertext = excluded.ciphertext, created_at = CURRENT_TIMESTAMP`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("vault: failed to prepare insert statement: %w", err)
	}

	log.Debug().Str("path", dbPath).Bool("compress", o.compress).Msg("vault opened")
	return &Vault{db: db, putStmt: putStmt, processor: processor}, nil
}

// Put stores plaintext under name, replacing any previous entry.
func (v *Vault) Put(name string, plaintext []byte) error {
	sealed, err := v.processor.PrepareOutput(plaintext)
	if err != nil {
		return fmt.Errorf("vault: failed to seal entry %q: %w", name, err)
	}
	if _, err := v.putStmt.Exec(name, string(sealed)); err != nil {
		return fmt.Errorf("vault: failed to store entry %q: %w", name, err)
	}
	return nil
}

// Get retrieves and decrypts the entry stored under name.
func (v *Vault) Get(name string) ([]byte, error) {
	var sealed string
	err := v.db.QueryRow(`SELECT ciphertext FROM secrets WHERE name = ?`, name).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("vault: failed to load entry %q: %w", name, err)
	}
	plaintext, err := v.processor.ParseInput([]byte(sealed))
	if err != nil {
		return nil, fmt.Errorf("vault: failed to open entry %q: %w", name, err)
	}
	return plaintext, nil
}

// List returns all entries ordered by name.
func (v *Vault) List() ([]Entry, error) {
	rows, err := v.db.Query(`SELECT name, created_at FROM secrets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("vault: failed to scan entry: %w", err)
		}
		e.CreatedAt = parseDBTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vault: error iterating entries: %w", err)
	}
	return entries, nil
}

// Delete removes the entry stored under name.
func (v *Vault) Delete(name string) error {
	res, err := v.db.Exec(`DELETE FROM secrets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("vault: failed to delete entry %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("vault: failed to confirm delete of %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the prepared statement and the database handle.
func (v *Vault) Close() error {
	var firstErr error
	if v.putStmt != nil {
		if err := v.putStmt.Close(); err != nil {
			firstErr = fmt.Errorf("vault: error closing statement: %w", err)
		}
		v.putStmt = nil
	}
	if v.db != nil {
		if err := v.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("vault: error closing db: %w", err)
		}
		v.db = nil
	}
	return firstErr
}

// parseDBTimestamp tries common SQLite timestamp formats.
func parseDBTimestamp(ts string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t
		}
	}
	log.Warn().Str("timestamp", ts).Msg("could not parse created_at timestamp")
	return time.Time{}
}
