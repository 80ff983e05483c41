package state

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"filmorate/backend/internal/constants"
	apperrors "filmorate/backend/pkg/errors"
)

// EarliestReleaseDate is the first day a film may be released on
var EarliestReleaseDate = NewDate(constants.EarliestReleaseYear, constants.EarliestReleaseMonth, constants.EarliestReleaseDay)

// ============================================================================
// Films
// ============================================================================

// MediaItem is a stored film
type MediaItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"name"`
	Synopsis    string `json:"description"`
	ReleaseDate Date   `json:"releaseDate"`
	Runtime     int    `json:"duration"` // Minutes
	Likes       IDSet  `json:"likes"`    // Ids of users who like the film
}

// Clone returns a copy that shares no mutable state with m
func (m MediaItem) Clone() MediaItem {
	m.Likes = m.Likes.Clone()
	return m
}

// MediaDraft carries the caller-supplied fields of a film.
// ID is ignored on create and required on update.
type MediaDraft struct {
	ID          int64  `json:"id"`
	Title       string `json:"name"`
	Synopsis    string `json:"description"`
	ReleaseDate *Date  `json:"releaseDate"`
	Runtime     *int   `json:"duration"`
}

// Validate checks the field rules in order: title, synopsis, release date, runtime
func (d MediaDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return apperrors.NewInvalid("name", "must not be blank")
	}
	if utf8.RuneCountInString(d.Synopsis) > constants.MaxSynopsisLength {
		return apperrors.NewInvalid("description", fmt.Sprintf("must be at most %d characters", constants.MaxSynopsisLength))
	}
	if d.ReleaseDate == nil || d.ReleaseDate.IsZero() {
		return apperrors.NewInvalid("releaseDate", "is required")
	}
	if d.ReleaseDate.Before(EarliestReleaseDate) {
		return apperrors.NewInvalid("releaseDate", fmt.Sprintf("must not be earlier than %s", EarliestReleaseDate))
	}
	if d.Runtime == nil || *d.Runtime <= 0 {
		return apperrors.NewInvalid("duration", "must be a positive number of minutes")
	}
	return nil
}

// Build turns a validated draft into a film with the given identity and likes
func (d MediaDraft) Build(id int64, likes IDSet) MediaItem {
	return MediaItem{
		ID:          id,
		Title:       d.Title,
		Synopsis:    d.Synopsis,
		ReleaseDate: *d.ReleaseDate,
		Runtime:     *d.Runtime,
		Likes:       likes,
	}
}

// ============================================================================
// Users
// ============================================================================

// Person is a stored user
type Person struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday"`
	Friends  IDSet  `json:"friends"`
}

// Clone returns a copy that shares no mutable state with p
func (p Person) Clone() Person {
	p.Friends = p.Friends.Clone()
	if p.Birthday != nil {
		b := *p.Birthday
		p.Birthday = &b
	}
	return p
}

// PersonDraft carries the caller-supplied fields of a user.
// ID is ignored on create and required on update.
type PersonDraft struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday"`
}

// Validate checks the field rules in order: email, login, birthday.
// today is the current calendar date; a birthday equal to it is accepted.
func (d PersonDraft) Validate(today Date) error {
	if strings.TrimSpace(d.Email) == "" || !strings.Contains(d.Email, "@") {
		return apperrors.NewInvalid("email", "must not be blank and must contain @")
	}
	if strings.TrimSpace(d.Login) == "" || strings.IndexFunc(d.Login, unicode.IsSpace) >= 0 {
		return apperrors.NewInvalid("login", "must not be blank or contain whitespace")
	}
	if d.Birthday != nil && !d.Birthday.IsZero() && d.Birthday.After(today) {
		return apperrors.NewInvalid("birthday", "must not be in the future")
	}
	return nil
}

// DisplayName is the name to store: the given one, or the login when blank
func (d PersonDraft) DisplayName() string {
	if strings.TrimSpace(d.Name) == "" {
		return d.Login
	}
	return d.Name
}

// Build turns a validated draft into a user with the given identity and friends
func (d PersonDraft) Build(id int64, friends IDSet) Person {
	p := Person{
		ID:      id,
		Email:   d.Email,
		Login:   d.Login,
		Name:    d.DisplayName(),
		Friends: friends,
	}
	if d.Birthday != nil && !d.Birthday.IsZero() {
		b := *d.Birthday
		p.Birthday = &b
	}
	return p
}
