package handler

import (
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsGet(c *gin.Context) {
	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsCreate(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	postID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.CreateCommentRequest
	if err := bindBody(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), userID, postID, input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdComment)
}

func (h *Handler) commentsEdit(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	commentID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.EditCommentRequest
	if err := bindBody(c, &input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedComment, err := h.services.Comment.Edit(c.Request.Context(), userID, commentID, input)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedComment)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	userID := h.getUserIDFromRequest(c)

	commentID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), userID, commentID); err != nil {
		h.serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
