package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists the entry as a single JSON document on the local
// filesystem. Writes go through a temp file in the same directory followed
// by a rename, so a crash mid-write leaves either the previous entry or
// the new one, never a torn mix of the two slots.
type File struct {
	mu   sync.Mutex
	path string
}

type fileEntry struct {
	Token    string          `json:"token,omitempty"`
	Identity json.RawMessage `json:"identity,omitempty"`
}

// NewFile creates a file-backed store at path. The file is created on the
// first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the entry. A missing file is an empty entry.
func (f *File) Load(context.Context) (Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, nil
	}
	if err != nil {
		return Entry{}, fmt.Errorf("credstore: read %s: %w", f.path, err)
	}

	var fe fileEntry
	if err := json.Unmarshal(data, &fe); err != nil {
		return Entry{}, fmt.Errorf("credstore: decode %s: %w", f.path, err)
	}
	return Entry{Token: fe.Token, Identity: cloneBytes(fe.Identity)}, nil
}

// Save writes token and identity together.
func (f *File) Save(_ context.Context, entry Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(fileEntry{Token: entry.Token, Identity: cloneBytes(entry.Identity)})
}

// SaveIdentity rewrites only the identity slot, keeping the stored token.
func (f *File) SaveIdentity(ctx context.Context, identity []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.loadLocked()
	if err != nil {
		return err
	}
	current.Identity = cloneBytes(identity)
	return f.write(current)
}

// Clear removes the file.
func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: remove %s: %w", f.path, err)
	}
	return nil
}

func (f *File) loadLocked() (fileEntry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileEntry{}, nil
	}
	if err != nil {
		return fileEntry{}, fmt.Errorf("credstore: read %s: %w", f.path, err)
	}
	var fe fileEntry
	if err := json.Unmarshal(data, &fe); err != nil {
		return fileEntry{}, fmt.Errorf("credstore: decode %s: %w", f.path, err)
	}
	return fe, nil
}

func (f *File) write(fe fileEntry) error {
	data, err := json.Marshal(fe)
	if err != nil {
		return fmt.Errorf("credstore: encode entry: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".deskauth-*")
	if err != nil {
		return fmt.Errorf("credstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("credstore: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("credstore: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("credstore: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("credstore: rename into place: %w", err)
	}
	return nil
}
