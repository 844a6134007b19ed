// Package memory is the client-local context store: snippets of content
// (reports, uploads, agent-generated files) the user keeps as background
// context for future agent calls. State is persisted synchronously on
// every mutation and loaded once at startup.
package memory

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicate is returned when a file with the same (name, type, source)
// is already stored. The caller surfaces this as an informational
// message ("ya está en memoria"), never as a failure.
var ErrDuplicate = errors.New("memory: file already stored")

// FileType classifies where a memory file came from.
type FileType string

const (
	TypeResearchReport FileType = "research_report"
	TypeUploadedFile   FileType = "uploaded_file"
	TypeAgentFile      FileType = "agent_file"
)

// Priority orders active files when assembling context.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Meta carries bookkeeping for a memory file.
type Meta struct {
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source"`
	Summary   string    `json:"summary,omitempty"`
}

// File is one persisted memory record.
type File struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     FileType `json:"type"`
	Content  string   `json:"content"`
	Meta     Meta     `json:"metadata"`
	IsActive bool     `json:"isActive"`
	Priority Priority `json:"priority"`
}

// Persister stores and loads the full file list.
type Persister interface {
	Load() ([]File, error)
	Save([]File) error
}

// Manager owns the memory file list. Every mutation is written through
// the persister before the call returns.
type Manager struct {
	mu        sync.RWMutex
	files     []File
	persister Persister
}

// NewManager loads existing files through the persister. A load failure
// is logged and treated as an empty store; memory is best-effort state,
// never a startup blocker.
func NewManager(p Persister) *Manager {
	m := &Manager{persister: p}
	if p != nil {
		files, err := p.Load()
		if err != nil {
			log.Printf("warning: load memory files: %v", err)
		} else {
			m.files = files
		}
	}
	return m
}

// Add stores a new file. Duplicates on (name, type, source) return
// ErrDuplicate without mutating anything. Missing id, priority, and
// created-at are filled in.
func (m *Manager) Add(f File) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.files {
		if existing.Name == f.Name && existing.Type == f.Type && existing.Meta.Source == f.Meta.Source {
			return File{}, ErrDuplicate
		}
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	if f.Meta.CreatedAt.IsZero() {
		f.Meta.CreatedAt = time.Now()
	}
	if f.Meta.Size == 0 {
		f.Meta.Size = len(f.Content)
	}

	m.files = append(m.files, f)
	m.persist()
	return f, nil
}

// Remove deletes a file by id.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.files {
		if f.ID == id {
			m.files = append(m.files[:i], m.files[i+1:]...)
			m.persist()
			return true
		}
	}
	return false
}

// Clear removes every file.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = nil
	m.persist()
}

// SetActive toggles whether a file participates in context assembly.
func (m *Manager) SetActive(id string, active bool) bool {
	return m.update(id, func(f *File) { f.IsActive = active })
}

// SetPriority adjusts a file's context priority.
func (m *Manager) SetPriority(id string, p Priority) bool {
	return m.update(id, func(f *File) { f.Priority = p })
}

// Get returns a file by id.
func (m *Manager) Get(id string) (File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

// List returns all files in insertion order.
func (m *Manager) List() []File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]File, len(m.files))
	copy(out, m.files)
	return out
}

// Count returns the number of stored files.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// ActiveContext returns the active files ordered high priority first,
// ties broken by insertion order. This is the set handed to the backend
// as background context.
func (m *Manager) ActiveContext() []File {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []File
	for _, f := range m.files {
		if f.IsActive {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) > priorityRank(out[j].Priority)
	})
	return out
}

func (m *Manager) update(id string, fn func(*File)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.files {
		if m.files[i].ID == id {
			fn(&m.files[i])
			m.persist()
			return true
		}
	}
	return false
}

// persist writes through synchronously. Callers hold the lock.
func (m *Manager) persist() {
	if m.persister == nil {
		return
	}
	files := make([]File, len(m.files))
	copy(files, m.files)
	if err := m.persister.Save(files); err != nil {
		log.Printf("warning: save memory files: %v", err)
	}
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}
