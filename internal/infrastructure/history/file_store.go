package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/pkg/filesystem"
	"github.com/dlwhyte/agentfoundry/internal/ports"
)

// FileStore appends session records to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new session store under ~/.foundry/history/sessions.jsonl.
func NewFileStore() *FileStore {
	return NewFileStoreAt(filepath.Join(filesystem.UserHomeDir(), ".foundry", "history", "sessions.jsonl"))
}

// NewFileStoreAt creates a store backed by an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.SessionRepository.
func (f *FileStore) Save(record domain.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Records loads session entries, newest first (limit/search optional).
func (f *FileStore) Records(limit int, search string) ([]domain.SessionRecord, error) {
	records, err := f.load()
	if err != nil {
		return nil, err
	}
	if search != "" {
		needle := strings.ToLower(search)
		filtered := records[:0]
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Prompt), needle) ||
				strings.Contains(strings.ToLower(string(rec.Outcome)), needle) ||
				strings.Contains(strings.ToLower(rec.BreachType), needle) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Clear removes the session file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExportJSON copies all records to a jsonl file at dest.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
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

// PruneOlderThan rewrites the file keeping only records inside the
// retention window.
func (f *FileStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	records, err := f.load()
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var kept []domain.SessionRecord
	for _, rec := range records {
		if rec.Timestamp.After(cutoff) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var buf bytes.Buffer
	for _, rec := range kept {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return os.WriteFile(f.path, buf.Bytes(), 0o644)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() ([]domain.SessionRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var records []domain.SessionRecord
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var rec domain.SessionRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.SessionRepository = (*FileStore)(nil)
