package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const storeVersion = 1

// storeFile is the on-disk envelope. The version field lets future
// schema changes skip stale files instead of misreading them.
type storeFile struct {
	Version int    `json:"version"`
	Files   []File `json:"files"`
}

// JSONStore persists memory files to a single JSON file under the user
// state dir, written atomically (temp file + rename).
type JSONStore struct {
	path string
}

// NewJSONStore creates a store at the given path, creating parent
// directories as needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// DefaultPath returns ~/.mitosis/memory.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".mitosis", "memory.json"), nil
}

func (s *JSONStore) Load() ([]File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read memory file: %w", err)
	}

	var sf storeFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse memory file: %w", err)
	}
	if sf.Version != storeVersion {
		return nil, fmt.Errorf("memory file version %d, expected %d", sf.Version, storeVersion)
	}
	return sf.Files, nil
}

func (s *JSONStore) Save(files []File) error {
	sf := storeFile{Version: storeVersion, Files: files}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory file: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp memory file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename memory file: %w", err)
	}
	return nil
}
