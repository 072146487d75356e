package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/darshak-ai/restaurant-platform/pkg/logger"
)

// Snapshotter persists the serialized per-session snapshot.
type Snapshotter interface {
	Save(ctx context.Context, sessionID string, payload []byte) error
	Load(ctx context.Context, sessionID string) ([]byte, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Subscriber observes committed state changes. Hooks run sequentially while
// the session lock is held; keep them cheap.
type Subscriber func(sessionID string, st *State)

// Store hands out per-session state and serializes every change back to the
// snapshot backend as it commits.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	snapshots   Snapshotter
	subscribers []Subscriber
	logg        *logger.Logger
}

type entry struct {
	mu    sync.Mutex
	state *State
}

// NewStore builds a session state store over the given snapshot backend.
func NewStore(snapshots Snapshotter, logg *logger.Logger) (*Store, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot backend required")
	}
	return &Store{
		sessions:  map[string]*entry{},
		snapshots: snapshots,
		logg:      logg,
	}, nil
}

// Subscribe registers a hook for committed changes. Not safe to call once
// requests are flowing; wire subscribers at startup.
func (s *Store) Subscribe(fn Subscriber) {
	if fn != nil {
		s.subscribers = append(s.subscribers, fn)
	}
}

// View reads the session's state through fn under the session lock.
func (s *Store) View(ctx context.Context, sessionID string, fn func(*State) error) error {
	e, err := s.entryFor(ctx, sessionID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// Update mutates the session's state through fn under the session lock, then
// persists the snapshot and notifies subscribers. When fn returns an error the
// state is still persisted: a failed operation may have advanced the checkout
// step or error message, and that progress must survive a reload.
func (s *Store) Update(ctx context.Context, sessionID string, fn func(*State) error) error {
	e, err := s.entryFor(ctx, sessionID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fnErr := fn(e.state)

	if err := s.persist(ctx, sessionID, e.state); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persist session snapshot", err)
		}
		if fnErr == nil {
			return err
		}
	}
	for _, subscriber := range s.subscribers {
		subscriber(sessionID, e.state)
	}
	return fnErr
}

// Logout clears the session's identity, cart and current order, keeping the
// selected restaurant, stored location and order history.
func (s *Store) Logout(ctx context.Context, sessionID string) error {
	return s.Update(ctx, sessionID, func(st *State) error {
		st.Logout()
		return nil
	})
}

// Drop forgets the session entirely, memory and snapshot both.
func (s *Store) Drop(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return s.snapshots.Delete(ctx, sessionID)
}

// Token returns the session's bearer token, empty for anonymous sessions.
func (s *Store) Token(ctx context.Context, sessionID string) string {
	var token string
	if err := s.View(ctx, sessionID, func(st *State) error {
		token = st.Session.Token
		return nil
	}); err != nil {
		return ""
	}
	return token
}

func (s *Store) entryFor(ctx context.Context, sessionID string) (*entry, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	s.mu.Lock()
	if e, ok := s.sessions[sessionID]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	// First touch this process has seen. Hydrate fully before the entry is
	// published; a concurrent request must never see the pre-snapshot state.
	e := &entry{state: NewState()}
	payload, found, err := s.snapshots.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}
	if found {
		var snap snapshot
		if unmarshalErr := json.Unmarshal(payload, &snap); unmarshalErr != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "corrupt session snapshot, starting fresh", unmarshalErr)
			}
		} else {
			e.state.fromSnapshot(snap)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sessionID]; ok {
		// Another first touch won the race while we were loading.
		return existing, nil
	}
	s.sessions[sessionID] = e
	return e, nil
}

func (s *Store) persist(ctx context.Context, sessionID string, st *State) error {
	payload, err := json.Marshal(st.toSnapshot())
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	return s.snapshots.Save(ctx, sessionID, payload)
}
