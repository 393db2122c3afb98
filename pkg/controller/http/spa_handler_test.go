package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpCtrl "github.com/caucaconecta/caucaconecta/pkg/controller/http"
	"github.com/m-mizutani/gt"
)

func TestSPAHandler(t *testing.T) {
	mockFS := http.Dir("testdata/spa")
	handler, err := httpCtrl.NewSPAHandler(mockFS)
	gt.NoError(t, err).Required()

	t.Run("serve existing static file", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/static/app.js", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/javascript; charset=utf-8")
		gt.Equal(t, w.Header().Get("Cache-Control"), "public, max-age=3600")
		gt.S(t, w.Body.String()).Contains("console.log")
	})

	t.Run("serve CSS file with correct content type", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/static/style.css", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/css; charset=utf-8")
		gt.S(t, w.Body.String()).Contains("body")
	})

	t.Run("serve index.html for client routes", func(t *testing.T) {
		for _, p := range []string{"/", "/mapa", "/reportar", "/incidentes/123", "/static"} {
			req := httptest.NewRequest("GET", p, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
			gt.S(t, w.Body.String()).Contains(`<div id="root">`)
		}
	})

	t.Run("directory traversal stays inside the root", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/static/../../spa_handler.go", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).Contains("<html")
		gt.False(t, strings.Contains(w.Body.String(), "package http"))
	})

	t.Run("unknown api path is a JSON 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/unknown", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusNotFound)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/json")
	})
}

func TestSPAHandlerWithoutIndex(t *testing.T) {
	_, err := httpCtrl.NewSPAHandler(http.Dir("testdata/spa/static"))
	gt.Error(t, err)
}
