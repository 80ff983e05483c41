// Package store holds values under monotonically assigned integer identities.
package store

import (
	"slices"

	apperrors "filmorate/backend/pkg/errors"
)

// IdentityStore keeps one value per identity. Identities start at 1, grow
// strictly in assignment order and are never reused, even after Delete.
//
// IdentityStore does no locking of its own; the owner serializes access.
type IdentityStore[T any] struct {
	name   string
	values map[int64]T
	lastID int64
}

// NewIdentityStore creates an empty store. name appears in lookup errors.
func NewIdentityStore[T any](name string) *IdentityStore[T] {
	return &IdentityStore[T]{
		name:   name,
		values: make(map[int64]T),
	}
}

// Name returns the store name used in errors
func (s *IdentityStore[T]) Name() string {
	return s.name
}

// Insert stores value under the next identity and returns it
func (s *IdentityStore[T]) Insert(value T) int64 {
	s.lastID++
	s.values[s.lastID] = value
	return s.lastID
}

// InsertWith lets build produce the value for the next identity and inserts
// it. Used when the value must carry its own identity.
func (s *IdentityStore[T]) InsertWith(build func(id int64) T) T {
	value := build(s.lastID + 1)
	s.Insert(value)
	return value
}

// Replace overwrites the value stored under id
func (s *IdentityStore[T]) Replace(id int64, value T) error {
	if _, ok := s.values[id]; !ok {
		return apperrors.NewNotFound(s.name, id)
	}
	s.values[id] = value
	return nil
}

// Update applies fn to the value stored under id in place
func (s *IdentityStore[T]) Update(id int64, fn func(value *T)) error {
	value, ok := s.values[id]
	if !ok {
		return apperrors.NewNotFound(s.name, id)
	}
	fn(&value)
	s.values[id] = value
	return nil
}

// Get returns the value stored under id
func (s *IdentityStore[T]) Get(id int64) (T, error) {
	value, ok := s.values[id]
	if !ok {
		var zero T
		return zero, apperrors.NewNotFound(s.name, id)
	}
	return value, nil
}

// Has reports whether id is present
func (s *IdentityStore[T]) Has(id int64) bool {
	_, ok := s.values[id]
	return ok
}

// Delete removes the value stored under id. The identity is not reissued.
func (s *IdentityStore[T]) Delete(id int64) error {
	if _, ok := s.values[id]; !ok {
		return apperrors.NewNotFound(s.name, id)
	}
	delete(s.values, id)
	return nil
}

// IDs returns every present identity in ascending order
func (s *IdentityStore[T]) IDs() []int64 {
	ids := make([]int64, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// List returns every value ordered by ascending identity
func (s *IdentityStore[T]) List() []T {
	ids := s.IDs()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.values[id])
	}
	return out
}

// Len returns the number of stored values
func (s *IdentityStore[T]) Len() int {
	return len(s.values)
}
