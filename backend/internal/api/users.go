package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmorate/backend/internal/state"
)

type userPath struct {
	ID int64 `uri:"id" binding:"gt=0"`
}

type friendPath struct {
	ID       int64 `uri:"id" binding:"gt=0"`
	FriendID int64 `uri:"friendId" binding:"gt=0"`
}

type commonPath struct {
	ID      int64 `uri:"id" binding:"gt=0"`
	OtherID int64 `uri:"otherId" binding:"gt=0"`
}

func (h *handler) createUser(c *gin.Context) {
	var draft state.PersonDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	h.log.Info("Creating user", zap.String("login", draft.Login), requestIDField(c))
	person, err := h.users.Create(draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("User created", zap.Int64("user_id", person.ID), requestIDField(c))
	c.JSON(http.StatusCreated, person)
}

func (h *handler) updateUser(c *gin.Context) {
	var draft state.PersonDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	person, err := h.users.Update(draft)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("User updated", zap.Int64("user_id", person.ID), requestIDField(c))
	c.JSON(http.StatusOK, person)
}

func (h *handler) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.users.List())
}

func (h *handler) getUser(c *gin.Context) {
	var p userPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	person, err := h.users.Get(p.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (h *handler) removeUser(c *gin.Context) {
	var p userPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	if err := h.users.Remove(p.ID); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("User removed", zap.Int64("user_id", p.ID), requestIDField(c))
	c.Status(http.StatusNoContent)
}

func (h *handler) addFriend(c *gin.Context) {
	h.setFriendship(c, true)
}

func (h *handler) removeFriend(c *gin.Context) {
	h.setFriendship(c, false)
}

func (h *handler) setFriendship(c *gin.Context, linked bool) {
	var p friendPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	var err error
	if linked {
		err = h.users.Befriend(p.ID, p.FriendID)
	} else {
		err = h.users.Unfriend(p.ID, p.FriendID)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("Friendship updated",
		zap.Int64("user_id", p.ID),
		zap.Int64("friend_id", p.FriendID),
		zap.Bool("linked", linked),
		requestIDField(c),
	)
	c.Status(http.StatusOK)
}

func (h *handler) listFriends(c *gin.Context) {
	var p userPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	friends, err := h.users.FriendsOf(p.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (h *handler) commonFriends(c *gin.Context) {
	var p commonPath
	if err := c.ShouldBindUri(&p); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	common, err := h.users.CommonFriends(p.ID, p.OtherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, common)
}
