package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmorate/backend/internal/state"
)

type filmPath struct {
	ID int64 `uri:"id" binding:"gt=0"`
}

type likePath struct {
	ID     int64 `uri:"id" binding:"gt=0"`
	UserID int64 `uri:"userId" binding:"gt=0"`
}

type popularQuery struct {
	Count int `form:"count"` // Zero or less means the default limit
}

func (h *handler) createFilm(c *gin.Context) {
	var draft state.MediaDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	h.log.Info("Creating film", zap.String("name", draft.Title), requestIDField(c))
	item, err := h.films.Create(draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Film created", zap.Int64("film_id", item.ID), requestIDField(c))
	c.JSON(http.StatusCreated, item)
}

func (h *handler) updateFilm(c *gin.Context) {
	var draft state.MediaDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	item, err := h.films.Update(draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Film updated", zap.Int64("film_id", item.ID), requestIDField(c))
	c.JSON(http.StatusOK, item)
}

func (h *handler) listFilms(c *gin.Context) {
	c.JSON(http.StatusOK, h.films.List())
}

func (h *handler) popularFilms(c *gin.Context) {
	var q popularQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.films.Popular(q.Count))
}

func (h *handler) getFilm(c *gin.Context) {
	var p filmPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	item, err := h.films.Get(p.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) removeFilm(c *gin.Context) {
	var p filmPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	if err := h.films.Remove(p.ID); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Film removed", zap.Int64("film_id", p.ID), requestIDField(c))
	c.Status(http.StatusNoContent)
}

func (h *handler) likeFilm(c *gin.Context) {
	h.setLike(c, true)
}

func (h *handler) unlikeFilm(c *gin.Context) {
	h.setLike(c, false)
}

func (h *handler) setLike(c *gin.Context, liked bool) {
	var p likePath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	var err error
	if liked {
		err = h.films.Like(p.ID, p.UserID)
	} else {
		err = h.films.Unlike(p.ID, p.UserID)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Film like updated",
		zap.Int64("film_id", p.ID),
		zap.Int64("user_id", p.UserID),
		zap.Bool("liked", liked),
		requestIDField(c),
	)
	c.Status(http.StatusOK)
}
