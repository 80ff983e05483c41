package graph

import (
	"fmt"

	"go.uber.org/zap"

	"filmorate/backend/internal/state"
	apperrors "filmorate/backend/pkg/errors"
	"filmorate/backend/pkg/logger"
)

// SocialGraph manages users and the symmetric friendship relation
type SocialGraph struct {
	store  *Store
	logger *zap.Logger
}

// NewSocialGraph creates a social graph over st
func NewSocialGraph(st *Store) *SocialGraph {
	return &SocialGraph{
		store:  st,
		logger: logger.Named("graph.social"),
	}
}

// ============================================================================
// User Lifecycle
// ============================================================================

// Create validates draft and stores it as a new user with no friends.
// A blank name is replaced by the login.
func (g *SocialGraph) Create(draft state.PersonDraft) (state.Person, error) {
	if err := draft.Validate(g.today()); err != nil {
		return state.Person{}, err
	}

	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	person := g.store.people.InsertWith(func(id int64) state.Person {
		return draft.Build(id, state.NewIDSet())
	})

	g.logger.Debug("User created", zap.Int64("user_id", person.ID), zap.String("login", person.Login))
	return person.Clone(), nil
}

// Update replaces every field of the user named by draft.ID. Friends are
// kept from the stored user. A blank name is replaced by the login.
func (g *SocialGraph) Update(draft state.PersonDraft) (state.Person, error) {
	if err := draft.Validate(g.today()); err != nil {
		return state.Person{}, err
	}

	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	prev, err := g.store.people.Get(draft.ID)
	if err != nil {
		return state.Person{}, err
	}

	person := draft.Build(draft.ID, prev.Friends)
	if err := g.store.people.Replace(draft.ID, person); err != nil {
		return state.Person{}, err
	}

	g.logger.Debug("User updated", zap.Int64("user_id", person.ID))
	return person.Clone(), nil
}

// Get returns the user stored under id
func (g *SocialGraph) Get(id int64) (state.Person, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	person, err := g.store.people.Get(id)
	if err != nil {
		return state.Person{}, err
	}
	return person.Clone(), nil
}

// List returns every user ordered by ascending id
func (g *SocialGraph) List() []state.Person {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	people := g.store.people.List()
	out := make([]state.Person, len(people))
	for i, p := range people {
		out[i] = p.Clone()
	}
	return out
}

// Remove deletes the user stored under id and drops them from every friend
// set in the same critical section. Likes they gave stay on the films.
func (g *SocialGraph) Remove(id int64) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	person, err := g.store.people.Get(id)
	if err != nil {
		return err
	}

	for _, fid := range person.Friends.Sorted() {
		if err := g.store.people.Update(fid, func(friend *state.Person) { friend.Friends.Remove(id) }); err != nil {
			panic(apperrors.NewInvariantViolation(fmt.Sprintf("user %d lists missing friend %d", id, fid)))
		}
	}
	if err := g.store.people.Delete(id); err != nil {
		return err
	}

	g.logger.Debug("User removed", zap.Int64("user_id", id), zap.Int("friends_dropped", person.Friends.Len()))
	return nil
}

// Count returns the number of stored users
func (g *SocialGraph) Count() int {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	return g.store.people.Len()
}

// ============================================================================
// Friendship
// ============================================================================

// Befriend makes a and b friends of each other. Repeating it is a no-op.
// A user cannot befriend themself.
func (g *SocialGraph) Befriend(a, b int64) error {
	return g.setFriendship(a, b, true)
}

// Unfriend removes the friendship between a and b from both sides.
// Repeating it is a no-op.
func (g *SocialGraph) Unfriend(a, b int64) error {
	return g.setFriendship(a, b, false)
}

func (g *SocialGraph) setFriendship(a, b int64, linked bool) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	if err := g.requirePeople(a, b); err != nil {
		return err
	}
	if a == b {
		return apperrors.NewInvalid("friendId", "a user cannot be their own friend")
	}

	// Both sides change under the same write lock
	toggle := func(owner, other int64) {
		err := g.store.people.Update(owner, func(p *state.Person) {
			if linked {
				p.Friends.Add(other)
			} else {
				p.Friends.Remove(other)
			}
		})
		if err != nil {
			panic(apperrors.NewInvariantViolation(fmt.Sprintf("user %d vanished during friendship update", owner)))
		}
	}
	toggle(a, b)
	toggle(b, a)

	g.logger.Debug("Friendship set",
		zap.Int64("user_id", a),
		zap.Int64("friend_id", b),
		zap.Bool("linked", linked),
	)
	return nil
}

// FriendsOf returns the friends of id ordered by ascending id
func (g *SocialGraph) FriendsOf(id int64) ([]state.Person, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	person, err := g.store.people.Get(id)
	if err != nil {
		return nil, err
	}
	return g.resolve(id, person.Friends), nil
}

// CommonFriends returns the users who are friends of both a and b, ordered
// by ascending id
func (g *SocialGraph) CommonFriends(a, b int64) ([]state.Person, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	if err := g.requirePeople(a, b); err != nil {
		return nil, err
	}
	pa, _ := g.store.people.Get(a)
	pb, _ := g.store.people.Get(b)

	return g.resolve(a, pa.Friends.Intersect(pb.Friends)), nil
}

// ============================================================================
// Helpers
// ============================================================================

// requirePeople checks a then b; the store lock must be held
func (g *SocialGraph) requirePeople(ids ...int64) error {
	for _, id := range ids {
		if !g.store.people.Has(id) {
			return apperrors.NewNotFound(g.store.people.Name(), id)
		}
	}
	return nil
}

// resolve looks up every id in ascending order. A friend id that does not
// resolve is a broken relation and panics with an invariant violation.
func (g *SocialGraph) resolve(owner int64, ids state.IDSet) []state.Person {
	out := make([]state.Person, 0, ids.Len())
	for _, fid := range ids.Sorted() {
		friend, err := g.store.people.Get(fid)
		if err != nil {
			panic(apperrors.NewInvariantViolation(fmt.Sprintf("user %d lists missing friend %d", owner, fid)))
		}
		out = append(out, friend.Clone())
	}
	return out
}

func (g *SocialGraph) today() state.Date {
	return state.DateOf(g.store.clock.Now())
}
