// Package history persists live attack session records. SQLite is the
// primary backend; a JSONL file store covers environments where the
// database cannot be opened.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/pkg/filesystem"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// SQLiteStore persists session records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.foundry/history/sessions.db database.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(filesystem.UserHomeDir(), ".foundry", "history", "sessions.db"))
}

// NewSQLiteStoreAt opens the database at an explicit path. Falls back
// to the JSONL store next to it when SQLite cannot be opened.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		provider TEXT,
		model TEXT,
		prompt TEXT,
		outcome TEXT,
		blocked_by TEXT,
		breach_type TEXT,
		simulated INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new session record.
func (s *SQLiteStore) Save(record domain.SessionRecord) error {
	if s.db == nil {
		return (&FileStore{path: s.jsonlPath()}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO sessions
		(id, timestamp, provider, model, prompt, outcome, blocked_by, breach_type, simulated, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Provider,
		record.Model,
		record.Prompt,
		string(record.Outcome),
		strings.Join(record.BlockedBy, ","),
		record.BreachType,
		boolToInt(record.Simulated),
		record.DurationMS,
	)
	return err
}

// Records returns session entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.SessionRecord, error) {
	if s.db == nil {
		return (&FileStore{path: s.jsonlPath()}).Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, provider, model, prompt, outcome, blocked_by, breach_type, simulated, duration_ms FROM sessions")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR outcome LIKE ? OR breach_type LIKE ?")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var ts, outcome, blockedBy string
		var simulated int
		if err := rows.Scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Prompt, &outcome, &blockedBy, &rec.BreachType, &simulated, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Outcome = domain.SessionOutcome(outcome)
		if blockedBy != "" {
			rec.BlockedBy = strings.Split(blockedBy, ",")
		}
		rec.Simulated = simulated == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all session entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return (&FileStore{path: s.jsonlPath()}).Clear()
	}
	_, err := s.db.Exec("DELETE FROM sessions")
	return err
}

// ExportJSON writes the sessions table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// PruneOlderThan deletes records older than the retention window.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.RFC3339)
	if s.db == nil {
		return (&FileStore{path: s.jsonlPath()}).PruneOlderThan(days)
	}
	_, err := s.db.Exec("DELETE FROM sessions WHERE datetime(timestamp) < datetime(?)", cutoff)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) jsonlPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".jsonl"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.SessionRepository = (*SQLiteStore)(nil)
