package http

import (
	"net/http"
	"path"
	"strings"

	"github.com/aescanero/tlregion/internal/i18n"
	"github.com/gin-gonic/gin"
)

// staticTypes maps file extensions to content types
var staticTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".svg":  "image/svg+xml",
}

func contentTypeFor(name string) string {
	if t, ok := staticTypes[strings.ToLower(path.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}

// hidden reports whether any segment of name starts with a dot
func hidden(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// serveStatic serves a file from the static directory. Directories are not
// listed, dotfiles are never served and "/" serves index.html.
func (s *Server) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		s.staticNotFound(c)
		return
	}
	if hidden(c.Request.URL.Path) {
		s.staticNotFound(c)
		return
	}

	name := c.Request.URL.Path
	if name == "/" {
		name = "/index.html"
	}

	f, err := s.static.Open(name)
	if err != nil {
		s.staticNotFound(c)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.staticNotFound(c)
		return
	}

	c.Header("Content-Type", contentTypeFor(name))
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func (s *Server) staticNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, s.msg(c, i18n.FileNotFound))
}
