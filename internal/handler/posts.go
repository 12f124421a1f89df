package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func (h *Handler) postsGetAll(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsCreate(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	var input dto.CreatePostRequest
	if err := bindBody(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdPost)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsEdit(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.EditPostRequest
	if err := bindBody(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedPost, err := h.services.Post.Edit(c.Request.Context(), userID, postID, input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedPost)
}

func (h *Handler) postsDelete(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), userID, postID); err != nil {
		h.serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) postsToggleLike(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	toggle, err := h.services.Post.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if toggle.Result == model.Unliked {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, toggle)
}

func (h *Handler) postsGetLikes(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	likes, err := h.services.Post.FindLikes(c.Request.Context(), postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

func (h *Handler) postsGetBackups(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	backups, err := h.services.Post.FindBackups(c.Request.Context(), postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, backups)
}
