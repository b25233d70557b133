package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/pevans/bulletin/announcement"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "templates/base.layout.html"

// Page names, one per *.page.html file.
const (
	pageList         = "list"
	pageAnnouncement = "announcement"
	pageNew          = "new"
	pageEdit         = "edit"
	pageError        = "error"
)

// HTMLData is the view model handed to every page.
type HTMLData struct {
	Title         string
	Path          string
	Status        int
	Message       string
	Announcement  *announcement.Announcement
	Announcements []announcement.Announcement
}

var functions = template.FuncMap{
	// excerpt shortens s to at most n runes, cutting at a word boundary
	"excerpt": func(s string, n int) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		cut := string([]rune(s)[:n])
		if i := strings.LastIndexAny(cut, " \n\t"); i > 0 {
			cut = cut[:i]
		}
		return strings.TrimSpace(cut) + "…"
	},
	// paragraphs splits content on blank lines
	"paragraphs": func(s string) []string {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		var out []string
		for _, p := range strings.Split(s, "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// parseTemplates builds one template set per page, each combining the base
// layout with the page's "content" block.
func parseTemplates() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{pageList, pageAnnouncement, pageNew, pageEdit, pageError} {
		ts, err := template.New(name).Funcs(functions).ParseFS(templateFS,
			layoutFile,
			fmt.Sprintf("templates/%s.page.html", name),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = ts
	}
	return pages, nil
}

// embeddedStatic returns the bundled static assets rooted at static/.
func embeddedStatic() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// renderHTML writes page with data and the given status.
func (s *Server) renderHTML(c *gin.Context, status int, page string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}
	data.Path = c.Request.URL.Path

	ts, ok := s.pages[page]
	if !ok {
		s.serverError(c, fmt.Errorf("unknown page %q", page))
		return
	}

	c.Render(status, htmlRender(ts, data))
}

func htmlRender(ts *template.Template, data *HTMLData) render.HTML {
	return render.HTML{
		Template: ts,
		Name:     "base",
		Data:     data,
	}
}
