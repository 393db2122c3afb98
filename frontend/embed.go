package frontend

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// FS embeds the web client and the static map image
//
//go:embed all:dist
var FS embed.FS

// GetHTTPFS returns the embedded frontend filesystem for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open embedded frontend")
	}

	if _, err := fs.Stat(sub, "index.html"); err != nil {
		return nil, goerr.Wrap(err, "embedded frontend has no index.html")
	}

	return http.FS(sub), nil
}
