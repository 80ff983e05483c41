package graph

import (
	"testing"
	"time"

	"filmorate/backend/internal/clock"
	"filmorate/backend/internal/state"
)

var testNow = time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)

type fixture struct {
	store   *Store
	clock   *clock.Fixed
	catalog *MediaCatalog
	social  *SocialGraph
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFixed(testNow)
	st := NewStore(clk)
	social := NewSocialGraph(st)
	return &fixture{
		store:   st,
		clock:   clk,
		catalog: NewMediaCatalog(st, social),
		social:  social,
	}
}

func intPtr(v int) *int { return &v }

func datePtr(s string) *state.Date {
	d := state.MustParseDate(s)
	return &d
}

func filmDraft(title string) state.MediaDraft {
	return state.MediaDraft{
		Title:       title,
		Synopsis:    "adipisicing",
		ReleaseDate: datePtr("1967-03-25"),
		Runtime:     intPtr(100),
	}
}

func personDraft(login string) state.PersonDraft {
	return state.PersonDraft{
		Email:    login + "@mail.ru",
		Login:    login,
		Name:     "",
		Birthday: datePtr("1946-08-20"),
	}
}

func (f *fixture) mustFilm(t *testing.T, title string) state.MediaItem {
	t.Helper()
	item, err := f.catalog.Create(filmDraft(title))
	if err != nil {
		t.Fatalf("Create film %q failed: %v", title, err)
	}
	return item
}

func (f *fixture) mustPerson(t *testing.T, login string) state.Person {
	t.Helper()
	p, err := f.social.Create(personDraft(login))
	if err != nil {
		t.Fatalf("Create user %q failed: %v", login, err)
	}
	return p
}

func filmIDs(items []state.MediaItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func personIDs(people []state.Person) []int64 {
	out := make([]int64, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}
