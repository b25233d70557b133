package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pevans/bulletin/announcement"
)

// ListAnnouncementsResponse is the body of GET /api/v1/announcements.
type ListAnnouncementsResponse struct {
	Announcements []announcement.Announcement `json:"announcements"`
	Total         int                         `json:"total"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// HandleAPIList handles GET /api/v1/announcements. An optional author query
// parameter keeps only that author's announcements.
func (s *Server) HandleAPIList(c *gin.Context) {
	items, err := s.board.List(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err)
		return
	}

	if author := c.Query("author"); author != "" {
		filtered := []announcement.Announcement{}
		for _, item := range items {
			if item.Author == author {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if items == nil {
		items = []announcement.Announcement{}
	}

	c.JSON(http.StatusOK, ListAnnouncementsResponse{
		Announcements: items,
		Total:         len(items),
	})
}

// HandleAPIGet handles GET /api/v1/announcements/:id.
func (s *Server) HandleAPIGet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_id", "Invalid announcement ID: "+c.Param("id")))
		return
	}

	item, err := s.board.Get(c.Request.Context(), id)
	if err != nil {
		s.handleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) handleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, announcement.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse("not_found", "Announcement "+c.Param("id")+" not found"))
	default:
		s.logger.Error("api request failed",
			"path", c.Request.URL.Path,
			"request_id", requestID(c),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to read announcements"))
	}
}
