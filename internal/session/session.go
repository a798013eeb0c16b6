package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jask/orderdesk/internal/exchange"
	"github.com/jask/orderdesk/internal/logging"
)

// Store is a session-scoped key-value store with idempotent lazy
// initialization: a key's factory runs exactly once no matter how many
// renders ask for it afterwards.
type Store struct {
	mu     sync.Mutex
	values map[string]any
}

func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// GetOrInit returns the stored value for key, invoking factory exactly once
// to create it if absent.
func (s *Store) GetOrInit(key string, factory func() any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	v := factory()
	s.values[key] = v
	return v
}

// Get returns the stored value for key, if any.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set overwrites the value for key.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

const (
	keyExchange    = "exchange"
	keyLogStream   = "log_stream"
	keySelectedTab = "selected_tab"
)

// DefaultTab is the tab a fresh session starts on.
const DefaultTab = "Submit Order"

// Session holds one user's state for the lifetime of their interaction:
// the exchange handle, the log capture sink and the selected tab. All three
// are created on first access and survive every re-render until the session
// ends. There is no teardown; the session dies with the process.
type Session struct {
	ID    string
	store *Store
}

func New() *Session {
	return &Session{ID: uuid.NewString(), store: NewStore()}
}

// Exchange returns the session's engine handle, creating it once.
func (s *Session) Exchange(factory func() exchange.Client) exchange.Client {
	v := s.store.GetOrInit(keyExchange, func() any { return factory() })
	return v.(exchange.Client)
}

// LogSink returns the session's capture sink, creating it once.
func (s *Session) LogSink(factory func() *logging.CaptureSink) *logging.CaptureSink {
	v := s.store.GetOrInit(keyLogStream, func() any { return factory() })
	return v.(*logging.CaptureSink)
}

// SelectedTab returns the current tab, defaulting to DefaultTab.
func (s *Session) SelectedTab() string {
	v := s.store.GetOrInit(keySelectedTab, func() any { return DefaultTab })
	return v.(string)
}

// SetSelectedTab records a tab change.
func (s *Session) SetSelectedTab(tab string) {
	s.store.Set(keySelectedTab, tab)
}
