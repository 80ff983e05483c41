package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmorate/backend/pkg/errors"
)

func TestMediaCatalog_CreateThenGet(t *testing.T) {
	f := newFixture(t)

	created, err := f.catalog.Create(filmDraft("nisi eiusmod"))
	require.NoError(t, err)

	got, err := f.catalog.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Zero(t, got.Likes.Len())
}

func TestMediaCatalog_CreateBoundaryScenario(t *testing.T) {
	f := newFixture(t)

	draft := filmDraft("Nisi Eiusmod")
	draft.Synopsis = strings.Repeat("s", 200)
	draft.ReleaseDate = datePtr("1895-12-28")
	draft.Runtime = intPtr(120)

	item, err := f.catalog.Create(draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	draft.ReleaseDate = datePtr("1895-12-27")
	_, err = f.catalog.Create(draft)
	assert.True(t, apperrors.IsInvalid(err))
	assert.Equal(t, 1, f.catalog.Count())
}

func TestMediaCatalog_InvalidCreateConsumesNoID(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.Create(filmDraft(""))
	require.Error(t, err)

	item := f.mustFilm(t, "first")
	assert.Equal(t, int64(1), item.ID)
}

func TestMediaCatalog_Update(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "before")
	user := f.mustPerson(t, "liker")
	require.NoError(t, f.catalog.Like(item.ID, user.ID))

	draft := filmDraft("after")
	draft.ID = item.ID
	draft.Synopsis = ""
	draft.Runtime = intPtr(190)

	updated, err := f.catalog.Update(draft)
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Empty(t, updated.Synopsis)
	assert.Equal(t, 190, updated.Runtime)
	assert.Equal(t, []int64{user.ID}, updated.Likes.Sorted(), "likes survive a full replace")

	got, _ := f.catalog.Get(item.ID)
	assert.Equal(t, updated, got)
}

func TestMediaCatalog_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	f.mustFilm(t, "only")

	unset := filmDraft("x")
	_, err := f.catalog.Update(unset)
	assert.True(t, apperrors.IsNotFound(err))

	absent := filmDraft("x")
	absent.ID = 9999
	_, err = f.catalog.Update(absent)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMediaCatalog_UpdateValidatesFirst(t *testing.T) {
	f := newFixture(t)

	draft := filmDraft("")
	draft.ID = 9999
	_, err := f.catalog.Update(draft)
	assert.True(t, apperrors.IsInvalid(err))
}

func TestMediaCatalog_LikeIdempotent(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "film")
	user := f.mustPerson(t, "user")

	require.NoError(t, f.catalog.Like(item.ID, user.ID))
	require.NoError(t, f.catalog.Like(item.ID, user.ID))
	got, _ := f.catalog.Get(item.ID)
	assert.Equal(t, []int64{user.ID}, got.Likes.Sorted())

	require.NoError(t, f.catalog.Unlike(item.ID, user.ID))
	require.NoError(t, f.catalog.Unlike(item.ID, user.ID))
	got, _ = f.catalog.Get(item.ID)
	assert.Zero(t, got.Likes.Len())
}

func TestMediaCatalog_LikeMissingReferences(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "film")
	user := f.mustPerson(t, "user")

	var notFound *apperrors.ErrNotFound

	err := f.catalog.Like(-1, user.ID)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "film", notFound.Store)

	err = f.catalog.Like(item.ID, 999)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Store)
	assert.Equal(t, int64(999), notFound.ID)

	err = f.catalog.Unlike(item.ID, 999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMediaCatalog_LikeByRemovedUser(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "film")
	stays := f.mustPerson(t, "stays")
	leaves := f.mustPerson(t, "leaves")

	require.NoError(t, f.catalog.Like(item.ID, leaves.ID))
	require.NoError(t, f.social.Remove(leaves.ID))

	// Existing like stays, new ones are refused
	got, _ := f.catalog.Get(item.ID)
	assert.True(t, got.Likes.Has(leaves.ID))
	assert.True(t, apperrors.IsNotFound(f.catalog.Like(item.ID, leaves.ID)))
	assert.NoError(t, f.catalog.Like(item.ID, stays.ID))
}

func TestMediaCatalog_GetReturnsCopy(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "film")

	item.Likes.Add(42)
	got, _ := f.catalog.Get(item.ID)
	assert.False(t, got.Likes.Has(42))

	list := f.catalog.List()
	list[0].Likes.Add(43)
	got, _ = f.catalog.Get(item.ID)
	assert.False(t, got.Likes.Has(43))
}

func TestMediaCatalog_PopularTieBreak(t *testing.T) {
	f := newFixture(t)
	items := []int64{f.mustFilm(t, "one").ID, f.mustFilm(t, "two").ID, f.mustFilm(t, "three").ID}
	users := []int64{f.mustPerson(t, "a").ID, f.mustPerson(t, "b").ID, f.mustPerson(t, "c").ID}

	likes := map[int64]int{items[0]: 3, items[1]: 1, items[2]: 3}
	for itemID, n := range likes {
		for _, userID := range users[:n] {
			require.NoError(t, f.catalog.Like(itemID, userID))
		}
	}

	assert.Equal(t, []int64{1, 3}, filmIDs(f.catalog.Popular(2)))
	assert.Equal(t, []int64{1, 3, 2}, filmIDs(f.catalog.Popular(0)))
}

func TestMediaCatalog_PopularLimits(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.mustFilm(t, fmt.Sprintf("film %d", i))
	}

	assert.Len(t, f.catalog.Popular(0), 10)
	assert.Len(t, f.catalog.Popular(-3), 10)
	assert.Len(t, f.catalog.Popular(5), 5)
	assert.Len(t, f.catalog.Popular(50), 12)

	seen := make(map[int64]bool)
	for _, item := range f.catalog.Popular(50) {
		assert.False(t, seen[item.ID], "film %d listed twice", item.ID)
		seen[item.ID] = true
	}
}

func TestMediaCatalog_PopularEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.catalog.Popular(10))
}

func TestMediaCatalog_Remove(t *testing.T) {
	f := newFixture(t)
	item := f.mustFilm(t, "gone")

	require.NoError(t, f.catalog.Remove(item.ID))
	assert.True(t, apperrors.IsNotFound(f.catalog.Remove(item.ID)))

	_, err := f.catalog.Get(item.ID)
	assert.True(t, apperrors.IsNotFound(err))

	next := f.mustFilm(t, "next")
	assert.Equal(t, int64(2), next.ID)
}

func TestNewMediaCatalog_RequiresSharedStore(t *testing.T) {
	other := NewSocialGraph(NewStore(nil))
	assert.Panics(t, func() { NewMediaCatalog(NewStore(nil), other) })
}
