package handler

import (
	"net/http"
	"net/url"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// analyticsLikes serves both /analytics/date_from=...&date_to=... and the
// query string form /analytics?date_from=...&date_to=...
func (h *Handler) analyticsLikes(c *gin.Context) {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")

	if rangeParam := c.Param("range"); rangeParam != "" {
		values, err := url.ParseQuery(rangeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidRange.Error()))
			return
		}
		dateFrom = values.Get("date_from")
		dateTo = values.Get("date_to")
	}

	result, err := h.services.Analytics.CountLikes(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
