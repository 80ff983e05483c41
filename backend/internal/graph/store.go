package graph

import (
	"fmt"
	"sync"

	"filmorate/backend/internal/clock"
	"filmorate/backend/internal/constants"
	"filmorate/backend/internal/state"
	"filmorate/backend/internal/store"
	apperrors "filmorate/backend/pkg/errors"
)

// Store owns every film and user held in memory.
//
// One reader/writer lock guards both identity stores. MediaCatalog and
// SocialGraph take the write lock for the whole of each mutation, so a
// relation that spans two values (a friendship, a like checked against the
// user store) is never observable half-applied. Reads share the read lock.
type Store struct {
	mu     sync.RWMutex
	films  *store.IdentityStore[state.MediaItem]
	people *store.IdentityStore[state.Person]
	clock  clock.Clock
}

// NewStore creates an empty store. clk supplies "today" for birthday checks.
func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	return &Store{
		films:  store.NewIdentityStore[state.MediaItem](constants.StoreFilm),
		people: store.NewIdentityStore[state.Person](constants.StoreUser),
		clock:  clk,
	}
}

// Stats is a point-in-time count of stored values and relations
type Stats struct {
	Films       int
	Users       int
	Likes       int
	Friendships int
}

// Stats counts everything under one read lock
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Films: s.films.Len(),
		Users: s.people.Len(),
	}
	for _, item := range s.films.List() {
		st.Likes += item.Likes.Len()
	}
	friendEnds := 0
	for _, p := range s.people.List() {
		friendEnds += p.Friends.Len()
	}
	st.Friendships = friendEnds / 2
	return st
}

// Verify checks that every friend set is symmetric and refers to present
// users. It returns an invariant violation describing the first breach.
func (s *Store) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.people.List() {
		for _, fid := range p.Friends.Sorted() {
			friend, err := s.people.Get(fid)
			if err != nil {
				return apperrors.NewInvariantViolation(fmt.Sprintf("user %d lists missing friend %d", p.ID, fid))
			}
			if !friend.Friends.Has(p.ID) {
				return apperrors.NewInvariantViolation(fmt.Sprintf("user %d lists %d as friend but not the reverse", p.ID, fid))
			}
		}
	}
	return nil
}
