package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpCtrl "github.com/caucaconecta/caucaconecta/pkg/controller/http"
	"github.com/caucaconecta/caucaconecta/pkg/repository"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestServer(t *testing.T) (*httpCtrl.Server, *usecase.UseCases) {
	t.Helper()
	uc := usecase.New(repository.NewMemory(), geo.Default(),
		usecase.WithLeaderFollowupDelay(10*time.Millisecond),
		usecase.WithReportFollowupDelay(10*time.Millisecond),
	)
	t.Cleanup(uc.Close)

	srv, err := httpCtrl.NewServer(context.Background(), httpCtrl.Config{Addr: ":0"}, httpCtrl.NewUseCases(uc))
	gt.NoError(t, err).Required()
	return srv, uc
}

// client keeps the session cookies between requests like a browser would
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, srv *httpCtrl.Server) *client {
	return &client{t: t, handler: srv.Handler, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		gt.NoError(c.t, err).Required()
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Host = "localhost:8080"
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) login(name, role, region string) *httptest.ResponseRecorder {
	c.t.Helper()
	w := c.do("POST", "/api/session/login", map[string]string{
		"name":   name,
		"email":  "test@example.com",
		"role":   role,
		"region": region,
	})
	gt.Equal(c.t, w.Code, http.StatusOK)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type errorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}
