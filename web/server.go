package web

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pevans/bulletin/announcement"
)

// Options configures a Server.
type Options struct {
	// StaticDir serves /static/ from disk instead of the embedded assets.
	StaticDir string

	// Logger receives request and error logs. Defaults to a discarding
	// logger.
	Logger *slog.Logger
}

// Server serves the bulletin board over HTTP.
type Server struct {
	board  *announcement.Board
	pages  map[string]*template.Template
	static http.FileSystem
	logger *slog.Logger
}

// NewServer creates a server for board. Templates are parsed up front so a
// broken template fails here rather than on the first request.
func NewServer(board *announcement.Board, opts Options) (*Server, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	static := http.FS(embeddedStatic())
	if opts.StaticDir != "" {
		static = http.Dir(opts.StaticDir)
	}

	return &Server{
		board:  board,
		pages:  pages,
		static: static,
		logger: logger,
	}, nil
}

// SetupRouter configures the Gin router with the page, feed and API routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.serverError(c, fmt.Errorf("panic: %v", recovered))
	}))

	router.StaticFS("/static", s.static)

	router.GET("/", s.HandleList)
	router.GET("/new", s.HandleNewForm)
	router.POST("/new", s.HandleCreate)
	router.GET("/feed.xml", s.HandleFeed)
	router.GET("/:id", s.HandleShow)
	router.POST("/:id", s.HandleComment)
	router.GET("/:id/edit", s.HandleEditForm)
	router.POST("/:id/edit", s.HandleEdit)

	api := router.Group("/api/v1/announcements")
	api.GET("", s.HandleAPIList)
	api.GET("/:id", s.HandleAPIGet)

	router.NoRoute(s.notFound)

	return router
}
