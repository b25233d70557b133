package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

// HandleFeed handles GET /feed.xml with an RSS 2.0 feed of all
// announcements, newest first.
func (s *Server) HandleFeed(c *gin.Context) {
	items, err := s.board.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}

	base := baseURL(c.Request)
	feed := &feeds.Feed{
		Title:       "Bulletin Board",
		Link:        &feeds.Link{Href: base + "/"},
		Description: "Announcements",
	}
	if len(items) > 0 {
		feed.Updated = items[0].Timestamp.Time
	}

	for _, item := range items {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          base + announcementPath(item.ID),
			Title:       item.Title,
			Link:        &feeds.Link{Href: base + announcementPath(item.ID)},
			Author:      &feeds.Author{Name: item.Author},
			Description: item.Content,
			Created:     item.Timestamp.Time,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
