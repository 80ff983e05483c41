package graph

import (
	"filmorate/backend/internal/state"
	"filmorate/backend/internal/store"
	apperrors "filmorate/backend/pkg/errors"
)

// personGuard confirms that an engaging user exists before a like is
// recorded or withdrawn. It reads the user store directly, so it is only
// called while the shared store lock is held.
type personGuard struct {
	people *store.IdentityStore[state.Person]
}

func newPersonGuard(st *Store, people *SocialGraph) personGuard {
	if people.store != st {
		panic(apperrors.NewInvariantViolation("media catalog and social graph must share one store"))
	}
	return personGuard{people: st.people}
}

func (g personGuard) require(personID int64) error {
	if !g.people.Has(personID) {
		return apperrors.NewNotFound(g.people.Name(), personID)
	}
	return nil
}
