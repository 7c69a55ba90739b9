package static

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
)

// Router fronts the admin bundle: API paths go to the backend, environment
// and log files are refused, files and directories under the web root are
// served, and everything else gets the entry document so the client-side
// router can resolve it.
type Router struct {
	webRoot   string
	index     string
	apiPrefix string
	api       http.Handler
	files     http.Handler
}

func NewRouter(cfg config.StaticConfig, api http.Handler) *Router {
	index := cfg.IndexDocument
	if index == "" {
		index = "index.html"
	}

	apiPrefix := cfg.APIPrefix
	if apiPrefix == "" {
		apiPrefix = "/api/"
	}

	return &Router{
		webRoot:   cfg.WebRoot,
		index:     index,
		apiPrefix: apiPrefix,
		api:       api,
		files:     http.FileServer(http.Dir(cfg.WebRoot)),
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, rt.apiPrefix) {
		rt.api.ServeHTTP(w, r)
		return
	}

	logger := middleware.LoggerFromContext(r.Context())
	clean := path.Clean("/" + r.URL.Path)

	if IsProtected(clean) {
		logger.Warn("Blocked access to protected file", slog.String("path", clean))
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	if rt.exists(clean) {
		rt.files.ServeHTTP(w, r)
		return
	}

	rt.serveIndex(w, r)
}

// IsProtected reports whether the file name is an environment file (.env,
// .env.*) or a log file (*.log).
func IsProtected(urlPath string) bool {
	name := path.Base(urlPath)

	return name == ".env" || strings.HasPrefix(name, ".env.") || strings.HasSuffix(name, ".log")
}

func (rt *Router) exists(clean string) bool {
	if clean == "/" {
		return false
	}

	_, err := os.Stat(filepath.Join(rt.webRoot, filepath.FromSlash(clean)))

	return err == nil
}

func (rt *Router) serveIndex(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(filepath.Join(rt.webRoot, rt.index))
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Error("Entry document missing", slog.String("error", err.Error()))
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, rt.index, info.ModTime(), f)
}
