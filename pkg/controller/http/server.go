package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// UseCases bundles the use cases served over HTTP
type UseCases struct {
	session  usecase.SessionUseCase
	location usecase.LocationUseCase
	incident usecase.IncidentUseCase
	support  usecase.SupportUseCase
	mapView  usecase.MapUseCase
}

// NewUseCases creates the use case bundle for NewServer
func NewUseCases(uc *usecase.UseCases) *UseCases {
	return &UseCases{
		session:  uc.Session,
		location: uc.Location,
		incident: uc.Incident,
		support:  uc.Support,
		mapView:  uc.Map,
	}
}

// Config holds the HTTP server settings
type Config struct {
	Addr string

	// Frontend serves the web client. nil falls back to a minimal page.
	Frontend http.FileSystem
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router     chi.Router
	useCases   *UseCases
	middleware *Middleware
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg Config, useCases *UseCases) (*Server, error) {
	router := chi.NewRouter()
	mw := NewMiddleware(useCases.session)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	sessionHandler := NewSessionHandler(useCases.session, useCases.location)
	incidentHandler := NewIncidentHandler(useCases.incident)
	supportHandler := NewSupportHandler(useCases.support)
	mapHandler := NewMapHandler(useCases.mapView)

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Use(mw.OptionalAuth)

		r.Route("/session", func(r chi.Router) {
			r.Post("/login", sessionHandler.HandleLogin)
			r.With(mw.RequireAuth).Post("/logout", sessionHandler.HandleLogout)
			r.With(mw.RequireAuth).Get("/me", sessionHandler.HandleMe)
		})

		r.With(mw.RequireAuth).Post("/location", sessionHandler.HandleLocation)
		r.With(mw.RequireAuth).Get("/notifications/latest", sessionHandler.HandleLatestNotification)

		r.Get("/regions", mapHandler.HandleRegions)
		r.Get("/regions/{name}", mapHandler.HandleRegion)
		r.Post("/project", mapHandler.HandleProject)
		r.Get("/map", mapHandler.HandleView)

		r.Get("/incidents.geojson", incidentHandler.HandleGeoJSON)
		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", incidentHandler.HandleList)
			r.Get("/nearby", incidentHandler.HandleNearby)
			r.Get("/{id}", incidentHandler.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAuth)
				r.Post("/", incidentHandler.HandleReport)
				r.Post("/import", incidentHandler.HandleImport)
				r.Post("/{id}/verify", incidentHandler.HandleVerify)
			})
		})

		r.Route("/requests", func(r chi.Router) {
			r.Use(mw.RequireAuth)
			r.Get("/", supportHandler.HandleList)
			r.Post("/emergency", supportHandler.HandleEmergency)
			r.Post("/resource", supportHandler.HandleResource)
			r.Post("/safe-zone", supportHandler.HandleSafeZone)
		})
	})

	if cfg.Frontend != nil {
		spa, err := NewSPAHandler(cfg.Frontend)
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to load frontend, using fallback", "error", err)
			router.Get("/*", handleFallbackHome)
		} else {
			ctxlog.From(ctx).Info("Serving frontend from embedded files")
			router.Handle("/*", spa)
		}
	} else {
		router.Get("/*", handleFallbackHome)
	}

	return &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:     router,
		useCases:   useCases,
		middleware: mw,
	}, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "caucaconecta",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleFallbackHome handles the root path when frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="utf-8">
    <title>CaucaConecta</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #16a34a 0%, #1e3a8a 100%);
            color: white;
        }
        .container { text-align: center; padding: 2rem; }
        h1 { margin: 0 0 1rem 0; font-size: 3rem; }
        p { margin: 0.5rem 0; font-size: 1.2rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>CaucaConecta</h1>
        <p>Seguridad comunitaria para el Cauca</p>
        <p>La API está disponible en /api</p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}
