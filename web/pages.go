package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pevans/bulletin/announcement"
)

// HandleList handles GET /.
func (s *Server) HandleList(c *gin.Context) {
	items, err := s.board.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}

	s.renderHTML(c, http.StatusOK, pageList, &HTMLData{
		Title:         "Announcements",
		Announcements: items,
	})
}

// HandleNewForm handles GET /new.
func (s *Server) HandleNewForm(c *gin.Context) {
	s.renderHTML(c, http.StatusOK, pageNew, &HTMLData{Title: "New announcement"})
}

// HandleCreate handles POST /new.
func (s *Server) HandleCreate(c *gin.Context) {
	fields, err := postForm(c, "author", "title", "content")
	if err != nil {
		s.handleError(c, err)
		return
	}

	created, err := s.board.Post(c.Request.Context(), fields[0], fields[1], fields[2])
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("announcement created", "id", created.ID, "request_id", requestID(c))
	c.Redirect(http.StatusSeeOther, "/")
}

// HandleShow handles GET /:id.
func (s *Server) HandleShow(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	item, err := s.board.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.renderHTML(c, http.StatusOK, pageAnnouncement, &HTMLData{
		Title:        item.Title,
		Announcement: item,
	})
}

// HandleComment handles POST /:id.
func (s *Server) HandleComment(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	fields, err := postForm(c, "commentator-name", "comment")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if _, err := s.board.Comment(c.Request.Context(), id, fields[0], fields[1]); err != nil {
		s.handleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, announcementPath(id))
}

// HandleEditForm handles GET /:id/edit.
func (s *Server) HandleEditForm(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	item, err := s.board.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.renderHTML(c, http.StatusOK, pageEdit, &HTMLData{
		Title:        "Edit " + item.Title,
		Announcement: item,
	})
}

// HandleEdit handles POST /:id/edit.
func (s *Server) HandleEdit(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}

	fields, err := postForm(c, "author", "title", "content")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if _, err := s.board.Edit(c.Request.Context(), id, fields[0], fields[1], fields[2]); err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info("announcement edited", "id", id, "request_id", requestID(c))
	c.Redirect(http.StatusSeeOther, announcementPath(id))
}

// parseID reads the :id path parameter. Anything that is not an integer
// cannot name an announcement, so it renders the not found page.
func (s *Server) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.notFound(c)
		return 0, false
	}
	return id, true
}

// postForm returns the values of the named form fields in order. A field
// that is absent fails with ErrMissingField; an empty value is accepted.
func postForm(c *gin.Context, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v, ok := c.GetPostForm(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", announcement.ErrMissingField, name)
		}
		values[i] = v
	}
	return values, nil
}

func announcementPath(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}

// handleError maps domain errors to error pages.
func (s *Server) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, announcement.ErrNotFound):
		s.notFound(c)
	case errors.Is(err, announcement.ErrMissingField):
		s.renderError(c, http.StatusBadRequest, err.Error())
	default:
		s.serverError(c, err)
	}
}

func (s *Server) notFound(c *gin.Context) {
	s.renderError(c, http.StatusNotFound, "The page you asked for does not exist.")
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", requestID(c),
		"error", err,
	)
	s.renderError(c, http.StatusInternalServerError, "")
}

// renderError writes the error page. If the page itself cannot be found the
// status text is written as plain text.
func (s *Server) renderError(c *gin.Context, status int, message string) {
	ts, ok := s.pages[pageError]
	if !ok {
		c.String(status, http.StatusText(status))
		c.Abort()
		return
	}

	c.Abort()
	c.Render(status, htmlRender(ts, &HTMLData{
		Title:   http.StatusText(status),
		Path:    c.Request.URL.Path,
		Status:  status,
		Message: message,
	}))
}
