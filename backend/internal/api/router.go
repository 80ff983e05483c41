// Package api exposes the film catalog and social graph over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmorate/backend/internal/state"
)

// FilmService is the film side of the core used by the handlers
type FilmService interface {
	Create(draft state.MediaDraft) (state.MediaItem, error)
	Update(draft state.MediaDraft) (state.MediaItem, error)
	Get(id int64) (state.MediaItem, error)
	List() []state.MediaItem
	Remove(id int64) error
	Like(itemID, personID int64) error
	Unlike(itemID, personID int64) error
	Popular(limit int) []state.MediaItem
}

// UserService is the user side of the core used by the handlers
type UserService interface {
	Create(draft state.PersonDraft) (state.Person, error)
	Update(draft state.PersonDraft) (state.Person, error)
	Get(id int64) (state.Person, error)
	List() []state.Person
	Remove(id int64) error
	Befriend(a, b int64) error
	Unfriend(a, b int64) error
	FriendsOf(id int64) ([]state.Person, error)
	CommonFriends(a, b int64) ([]state.Person, error)
}

// Options tunes the router. Nil Metrics or RateLimiter disables that feature.
type Options struct {
	Logger      *zap.Logger
	Metrics     *Metrics
	RateLimiter *RateLimiter
}

type handler struct {
	films FilmService
	users UserService
	log   *zap.Logger
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(films FilmService, users UserService, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestID())
	// Metrics wrap recovery so recovered panics are counted as 500s
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(requestLogger(log))
	router.Use(recovery(log))
	if opts.RateLimiter != nil {
		var onReject func()
		if opts.Metrics != nil {
			onReject = opts.Metrics.RecordRateLimited
		}
		router.Use(opts.RateLimiter.Middleware(log, onReject))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	h := &handler{films: films, users: users, log: log}

	filmRoutes := router.Group("/films")
	{
		filmRoutes.POST("", h.createFilm)
		filmRoutes.PUT("", h.updateFilm)
		filmRoutes.GET("", h.listFilms)
		filmRoutes.GET("/popular", h.popularFilms)
		filmRoutes.GET("/:id", h.getFilm)
		filmRoutes.DELETE("/:id", h.removeFilm)
		filmRoutes.PUT("/:id/like/:userId", h.likeFilm)
		filmRoutes.DELETE("/:id/like/:userId", h.unlikeFilm)
	}

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", h.createUser)
		userRoutes.PUT("", h.updateUser)
		userRoutes.GET("", h.listUsers)
		userRoutes.GET("/:id", h.getUser)
		userRoutes.DELETE("/:id", h.removeUser)
		userRoutes.PUT("/:id/friends/:friendId", h.addFriend)
		userRoutes.DELETE("/:id/friends/:friendId", h.removeFriend)
		userRoutes.GET("/:id/friends", h.listFriends)
		userRoutes.GET("/:id/friends/common/:otherId", h.commonFriends)
	}

	return router
}
