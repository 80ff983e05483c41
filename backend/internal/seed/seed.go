// Package seed loads demo data from a YAML fixture through the public
// catalog and social graph operations, so every rule applies to it.
package seed

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"filmorate/backend/internal/state"
)

// Fixture is the document layout of a seed file
type Fixture struct {
	Users       []UserEntry `yaml:"users"`
	Films       []FilmEntry `yaml:"films"`
	Friendships [][]string  `yaml:"friendships"` // Pairs of logins
	Likes       []LikeEntry `yaml:"likes"`
}

// UserEntry describes one user. Birthday is YYYY-MM-DD.
type UserEntry struct {
	Email    string `yaml:"email"`
	Login    string `yaml:"login"`
	Name     string `yaml:"name,omitempty"`
	Birthday string `yaml:"birthday,omitempty"`
}

// FilmEntry describes one film. ReleaseDate is YYYY-MM-DD.
type FilmEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	ReleaseDate string `yaml:"releaseDate"`
	Duration    int    `yaml:"duration"`
}

// LikeEntry records that the user with login User likes the film titled Film
type LikeEntry struct {
	Film string `yaml:"film"`
	User string `yaml:"user"`
}

// Films is the part of the catalog the loader drives
type Films interface {
	Create(draft state.MediaDraft) (state.MediaItem, error)
	Like(itemID, personID int64) error
}

// Users is the part of the social graph the loader drives
type Users interface {
	Create(draft state.PersonDraft) (state.Person, error)
	Befriend(a, b int64) error
}

// Summary counts what a load created
type Summary struct {
	Users       int
	Films       int
	Friendships int
	Likes       int
}

// Load reads and parses a fixture file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture, rejecting unknown fields
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, pair := range fx.Friendships {
		if len(pair) != 2 {
			return nil, fmt.Errorf("friendships[%d]: expected two logins, got %d", i, len(pair))
		}
	}
	return &fx, nil
}

// Apply creates users, films, friendships and likes in that order.
// It stops at the first failing entry; whatever was created before it stays.
func (fx *Fixture) Apply(films Films, users Users) (Summary, error) {
	var sum Summary
	logins := make(map[string]int64, len(fx.Users))
	titles := make(map[string]int64, len(fx.Films))

	for i, u := range fx.Users {
		if _, dup := logins[u.Login]; dup {
			return sum, fmt.Errorf("users[%d]: duplicate login %q", i, u.Login)
		}
		draft := state.PersonDraft{Email: u.Email, Login: u.Login, Name: u.Name}
		if u.Birthday != "" {
			d, err := state.ParseDate(u.Birthday)
			if err != nil {
				return sum, fmt.Errorf("users[%d] %q: %w", i, u.Login, err)
			}
			draft.Birthday = &d
		}
		p, err := users.Create(draft)
		if err != nil {
			return sum, fmt.Errorf("users[%d] %q: %w", i, u.Login, err)
		}
		logins[u.Login] = p.ID
		sum.Users++
	}

	for i, f := range fx.Films {
		if _, dup := titles[f.Name]; dup {
			return sum, fmt.Errorf("films[%d]: duplicate name %q", i, f.Name)
		}
		draft := state.MediaDraft{Title: f.Name, Synopsis: f.Description}
		if f.ReleaseDate != "" {
			d, err := state.ParseDate(f.ReleaseDate)
			if err != nil {
				return sum, fmt.Errorf("films[%d] %q: %w", i, f.Name, err)
			}
			draft.ReleaseDate = &d
		}
		duration := f.Duration
		draft.Runtime = &duration

		item, err := films.Create(draft)
		if err != nil {
			return sum, fmt.Errorf("films[%d] %q: %w", i, f.Name, err)
		}
		titles[f.Name] = item.ID
		sum.Films++
	}

	for i, pair := range fx.Friendships {
		a, okA := logins[pair[0]]
		b, okB := logins[pair[1]]
		if !okA || !okB {
			return sum, fmt.Errorf("friendships[%d]: unknown login in %v", i, pair)
		}
		if err := users.Befriend(a, b); err != nil {
			return sum, fmt.Errorf("friendships[%d] %v: %w", i, pair, err)
		}
		sum.Friendships++
	}

	for i, like := range fx.Likes {
		itemID, ok := titles[like.Film]
		if !ok {
			return sum, fmt.Errorf("likes[%d]: unknown film %q", i, like.Film)
		}
		personID, ok := logins[like.User]
		if !ok {
			return sum, fmt.Errorf("likes[%d]: unknown login %q", i, like.User)
		}
		if err := films.Like(itemID, personID); err != nil {
			return sum, fmt.Errorf("likes[%d] %q by %q: %w", i, like.Film, like.User, err)
		}
		sum.Likes++
	}

	return sum, nil
}
