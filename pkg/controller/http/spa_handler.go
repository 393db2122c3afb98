package http

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// SPAHandler serves the web client. Unknown paths get index.html so client
// side routes work on reload; unknown /api paths get a JSON 404 instead.
type SPAHandler struct {
	fileSystem http.FileSystem
	index      []byte
	loadedAt   time.Time
}

// NewSPAHandler creates a new SPA handler
func NewSPAHandler(filesystem http.FileSystem) (*SPAHandler, error) {
	f, err := filesystem.Open("/index.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open index.html for SPA handler")
	}
	defer f.Close()

	index, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read index.html content")
	}

	return &SPAHandler{
		fileSystem: filesystem,
		index:      index,
		loadedAt:   time.Now(),
	}, nil
}

// ServeHTTP implements http.Handler
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cleanPath := path.Clean("/" + r.URL.Path)

	if cleanPath == "/api" || strings.HasPrefix(cleanPath, "/api/") {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	file, err := h.fileSystem.Open(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.serveIndex(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if stat.IsDir() {
		h.serveIndex(w, r)
		return
	}

	if contentType := getContentType(cleanPath); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if strings.HasPrefix(cleanPath, "/static/") {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
}

func (h *SPAHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", h.loadedAt, bytes.NewReader(h.index))
}

var mimeTypes = map[string]string{
	".html":    "text/html; charset=utf-8",
	".css":     "text/css; charset=utf-8",
	".js":      "application/javascript; charset=utf-8",
	".json":    "application/json; charset=utf-8",
	".geojson": "application/geo+json",
	".png":     "image/png",
	".jpg":     "image/jpeg",
	".svg":     "image/svg+xml",
	".ico":     "image/x-icon",
	".woff2":   "font/woff2",
}

// getContentType returns the content type for common file extensions
func getContentType(filePath string) string {
	return mimeTypes[path.Ext(filePath)]
}
