package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the ordered page list and the live/paged navigation state
// for one task. Insertion order is display order; there is no reordering.
//
// All methods are safe for concurrent use. Mutations notify subscribers
// and signal a coalesced change channel so a UI can re-render.
type Store struct {
	mu          sync.RWMutex
	pages       []Page
	current     int
	live        bool
	online      bool
	subscribers []func()
	changeCh    chan struct{}
}

func NewStore() *Store {
	return &Store{
		live:     true,
		changeCh: make(chan struct{}, 1),
	}
}

// Append inserts a page at the end. While live, the current index follows
// the newest page. An empty id or zero timestamp is filled in.
func (s *Store) Append(p Page) string {
	s.mu.Lock()
	s.prepare(&p)
	s.pages = append(s.pages, p)
	if s.live {
		s.current = len(s.pages) - 1
	}
	id := p.ID
	s.mu.Unlock()
	s.notify()
	return id
}

// UpsertSingleton replaces the page with the given id in place, keeping
// its position, or appends it when absent. Used for the plan page and
// the final-report page, which grow rather than duplicate.
func (s *Store) UpsertSingleton(id string, p Page) {
	s.mu.Lock()
	p.ID = id
	s.prepare(&p)
	replaced := false
	for i := range s.pages {
		if s.pages[i].ID == id {
			s.pages[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.pages = append(s.pages, p)
	}
	if s.live {
		s.current = len(s.pages) - 1
	}
	s.mu.Unlock()
	s.notify()
}

// GoTo navigates to the given index, clamped into range. Navigating
// anywhere but the last index drops out of live mode. On an empty store
// there is nothing to page away from, so live follow is kept.
func (s *Store) GoTo(index int) {
	s.mu.Lock()
	index = s.clamp(index)
	s.current = index
	if len(s.pages) > 0 && index != len(s.pages)-1 {
		s.live = false
	}
	s.mu.Unlock()
	s.notify()
}

// GoLive re-engages live follow and jumps to the newest page. It is a
// no-op until the system is online.
func (s *Store) GoLive() {
	s.mu.Lock()
	if !s.online {
		s.mu.Unlock()
		return
	}
	s.live = true
	if len(s.pages) > 0 {
		s.current = len(s.pages) - 1
	}
	s.mu.Unlock()
	s.notify()
}

// Park navigates to the given index and unconditionally drops live
// mode, even when the index is the newest page. Used to land the user on
// the final report.
func (s *Store) Park(index int) {
	s.mu.Lock()
	s.current = s.clamp(index)
	s.live = false
	s.mu.Unlock()
	s.notify()
}

// GoToStart jumps to the first page and drops out of live mode.
func (s *Store) GoToStart() {
	s.mu.Lock()
	s.current = 0
	s.live = false
	s.mu.Unlock()
	s.notify()
}

// Next and Prev step one page at a time with the same clamping and
// live-mode rules as GoTo.
func (s *Store) Next() { s.GoTo(s.Index() + 1) }
func (s *Store) Prev() { s.GoTo(s.Index() - 1) }

// Reset clears all state back to a fresh, offline, live-following store.
// Called when the active task changes; there is no cross-task carryover.
func (s *Store) Reset() {
	s.mu.Lock()
	s.pages = nil
	s.current = 0
	s.live = true
	s.online = false
	s.mu.Unlock()
	s.notify()
}

// SetOnline marks the monitor as online (or not). GoLive is gated on it.
func (s *Store) SetOnline(online bool) {
	s.mu.Lock()
	s.online = online
	s.mu.Unlock()
	s.notify()
}

// Current returns the visible page. ok is false for an empty store,
// which is the "no content" display state rather than an error.
func (s *Store) Current() (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.pages) == 0 {
		return Page{}, false
	}
	return s.pages[s.current], true
}

// Get returns the page with the given id.
func (s *Store) Get(id string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Has reports whether a page with the given id exists.
func (s *Store) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Pages returns a copy of the page list in display order.
func (s *Store) Pages() []Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func (s *Store) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Live() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

func (s *Store) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Changes returns a coalesced change-notification channel.
func (s *Store) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *Store) prepare(p *Page) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	p.FillMeta()
}

// clamp forces an index into [0, len-1]. Callers hold the lock.
func (s *Store) clamp(index int) int {
	if len(s.pages) == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > len(s.pages)-1 {
		return len(s.pages) - 1
	}
	return index
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}

	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}
