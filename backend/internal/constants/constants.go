package constants

// Store names used in lookup errors and logs
const (
	StoreFilm = "film"
	StoreUser = "user"
)

// Film rules
const (
	// MaxSynopsisLength is the longest description accepted, in code points
	MaxSynopsisLength = 200

	// EarliestReleaseYear, EarliestReleaseMonth and EarliestReleaseDay mark the
	// first public film screening; nothing may be released before it
	EarliestReleaseYear  = 1895
	EarliestReleaseMonth = 12
	EarliestReleaseDay   = 28
)

// Ranking constants
const (
	// DefaultPopularLimit is used when a popularity query names no positive limit
	DefaultPopularLimit = 10
)
