package graph

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"filmorate/backend/internal/constants"
	"filmorate/backend/internal/state"
	apperrors "filmorate/backend/pkg/errors"
	"filmorate/backend/pkg/logger"
)

// MediaCatalog manages films and the likes recorded against them
type MediaCatalog struct {
	store  *Store
	guard  personGuard
	logger *zap.Logger
}

// NewMediaCatalog creates a catalog over st. people must wrap the same store;
// it backs the check that a liking user exists.
func NewMediaCatalog(st *Store, people *SocialGraph) *MediaCatalog {
	return &MediaCatalog{
		store:  st,
		guard:  newPersonGuard(st, people),
		logger: logger.Named("graph.media"),
	}
}

// ============================================================================
// Film Lifecycle
// ============================================================================

// Create validates draft and stores it as a new film with no likes
func (c *MediaCatalog) Create(draft state.MediaDraft) (state.MediaItem, error) {
	if err := draft.Validate(); err != nil {
		return state.MediaItem{}, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	item := c.store.films.InsertWith(func(id int64) state.MediaItem {
		return draft.Build(id, state.NewIDSet())
	})

	c.logger.Debug("Film created", zap.Int64("film_id", item.ID), zap.String("name", item.Title))
	return item.Clone(), nil
}

// Update replaces every field of the film named by draft.ID. Likes are kept
// from the stored film; they change only through Like and Unlike.
func (c *MediaCatalog) Update(draft state.MediaDraft) (state.MediaItem, error) {
	if err := draft.Validate(); err != nil {
		return state.MediaItem{}, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	prev, err := c.store.films.Get(draft.ID)
	if err != nil {
		return state.MediaItem{}, err
	}

	item := draft.Build(draft.ID, prev.Likes)
	if err := c.store.films.Replace(draft.ID, item); err != nil {
		return state.MediaItem{}, err
	}

	c.logger.Debug("Film updated", zap.Int64("film_id", item.ID))
	return item.Clone(), nil
}

// Get returns the film stored under id
func (c *MediaCatalog) Get(id int64) (state.MediaItem, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	item, err := c.store.films.Get(id)
	if err != nil {
		return state.MediaItem{}, err
	}
	return item.Clone(), nil
}

// List returns every film ordered by ascending id
func (c *MediaCatalog) List() []state.MediaItem {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	return cloneItems(c.store.films.List())
}

// Remove deletes the film stored under id
func (c *MediaCatalog) Remove(id int64) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if err := c.store.films.Delete(id); err != nil {
		return err
	}

	c.logger.Debug("Film removed", zap.Int64("film_id", id))
	return nil
}

// Count returns the number of stored films
func (c *MediaCatalog) Count() int {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	return c.store.films.Len()
}

// ============================================================================
// Likes
// ============================================================================

// Like records that personID likes itemID. Liking twice is a no-op.
func (c *MediaCatalog) Like(itemID, personID int64) error {
	return c.setLike(itemID, personID, true)
}

// Unlike withdraws personID's like of itemID. Withdrawing twice is a no-op.
func (c *MediaCatalog) Unlike(itemID, personID int64) error {
	return c.setLike(itemID, personID, false)
}

func (c *MediaCatalog) setLike(itemID, personID int64, liked bool) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if !c.store.films.Has(itemID) {
		return apperrors.NewNotFound(c.store.films.Name(), itemID)
	}
	if err := c.guard.require(personID); err != nil {
		return err
	}

	changed := false
	err := c.store.films.Update(itemID, func(item *state.MediaItem) {
		if liked {
			changed = item.Likes.Add(personID)
		} else {
			changed = item.Likes.Remove(personID)
		}
	})
	if err != nil {
		return err
	}

	c.logger.Debug("Film like set",
		zap.Int64("film_id", itemID),
		zap.Int64("user_id", personID),
		zap.Bool("liked", liked),
		zap.Bool("changed", changed),
	)
	return nil
}

// ============================================================================
// Ranking
// ============================================================================

// Popular returns up to limit films ordered by like count, most liked first.
// Films with equal counts are ordered by ascending id. A limit of zero or
// less means DefaultPopularLimit.
func (c *MediaCatalog) Popular(limit int) []state.MediaItem {
	if limit <= 0 {
		limit = constants.DefaultPopularLimit
	}

	c.store.mu.RLock()
	items := cloneItems(c.store.films.List())
	c.store.mu.RUnlock()

	slices.SortFunc(items, func(a, b state.MediaItem) int {
		if byLikes := cmp.Compare(b.Likes.Len(), a.Likes.Len()); byLikes != 0 {
			return byLikes
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func cloneItems(items []state.MediaItem) []state.MediaItem {
	out := make([]state.MediaItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
