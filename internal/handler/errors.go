package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidID     = errors.New("invalid ID")
	errInvalidRange  = errors.New("invalid date range")
)

func (h *Handler) serviceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.NewValidationResponse(validationErr.Error(), validationErr.Fields))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
	}
}
