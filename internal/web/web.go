package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"visitavigliano/internal/config"
	"visitavigliano/internal/dates"
	"visitavigliano/internal/ics"
	appLog "visitavigliano/internal/log"
	"visitavigliano/internal/model"
	"visitavigliano/internal/site"
)

// Server serves the rendered pages and a small JSON API over the loaded
// site state. Requests only read State; feeds are fetched by the loader.
type Server struct {
	cfg      *config.Config
	state    *site.State
	dates    *dates.Formatter
	renderer *Renderer
	router   chi.Router
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, state *site.State) (*Server, error) {
	pages, err := NewPages(cfg.PagesDir)
	if err != nil {
		return nil, err
	}
	f := dates.NewFormatter(cfg.Location())
	s := &Server{
		cfg:      cfg,
		state:    state,
		dates:    f,
		renderer: NewRenderer(pages, f, cfg.PlaceholderImage, cfg.MaxSliderEvents),
		router:   chi.NewRouter(),
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps Handler in an http.Server bound to cfg.Listen.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Get("/", s.handlePage(PageHome))
	r.Get("/eventi", s.handlePage(PageEvents))
	r.Get("/eventi.ics", s.handleCalendar)
	r.Get("/preview.png", s.handlePreview)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", s.handleEvents)
		r.Get("/content", s.handleContent)
		r.Get("/detail/{id}", s.handleDetail)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handlePage renders one of the site pages for the request's query state:
// categoria, evento, menu=1, chiudi=1.
func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.renderer.Render(name, s.state.Snapshot(), InteractionFromQuery(r.URL.Query()))
		if err != nil {
			appLog.Error("page render failed", err, "page", name)
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}

		// Render fully before writing so a failure can still become a 500.
		var buf bytes.Buffer
		if _, err := doc.WriteTo(&buf); err != nil {
			appLog.Error("page serialize failed", err, "page", name)
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// handlePreview serves the last captured PNG snapshot from disk.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	// http.ServeFile maps missing files to 404 and other failures to 500.
	http.ServeFile(w, r, s.cfg.PreviewPath)
}

// eventsResponse is the JSON response shape for /api/events.
type eventsResponse struct {
	Category   string        `json:"category"`
	Categories []string      `json:"categories"`
	Events     []model.Event `json:"events"`
	Total      int           `json:"total"`
	LoadedAt   *time.Time    `json:"loaded_at,omitempty"`
}

// contentResponse is the JSON response shape for /api/content.
type contentResponse struct {
	Content  map[string]model.ContentEntry `json:"content"`
	LoadedAt *time.Time                    `json:"loaded_at,omitempty"`

	// Stale is set while the last refresh failed and Content is the
	// previous good load.
	Stale bool   `json:"stale"`
	Error string `json:"error,omitempty"`
}

// handleEvents returns the upcoming events filtered by category.
//
// GET /api/events?categoria=Sagra
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	if snap.EventsUnavailable() {
		writeError(w, http.StatusServiceUnavailable, "events not loaded")
		return
	}

	view := site.NewView(snap.Events, r.URL.Query().Get("categoria"))
	events := view.Events
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{
		Category:   view.Category,
		Categories: view.Categories,
		Events:     events,
		Total:      len(snap.Events),
		LoadedAt:   timePtr(snap.EventsAt),
	})
}

func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	snap := s.state.Snapshot()
	content := snap.Content
	if content == nil {
		content = map[string]model.ContentEntry{}
	}
	resp := contentResponse{
		Content:  content,
		LoadedAt: timePtr(snap.ContentAt),
		Stale:    snap.ContentStale(),
	}
	if snap.ContentErr != nil {
		resp.Error = snap.ContentErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDetail resolves an event ID or content anchor to the overlay
// record. Unknown IDs resolve to generic labels, never to an error.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.state.Snapshot().Detail(id, s.dates))
}

// handleCalendar exports the upcoming events as iCalendar.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	if snap.EventsUnavailable() {
		writeError(w, http.StatusServiceUnavailable, "events not loaded")
		return
	}

	base := requestBaseURL(r)
	exporter := ics.NewExporter(ics.Options{
		Location: s.dates.Location(),
		DetailURL: func(id string) string {
			return base + "/eventi" + detailHref("", id)
		},
	})

	var buf bytes.Buffer
	if err := exporter.Write(&buf, snap.Events); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export events")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="eventi.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// requestLogger emits one structured log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		appLog.Info("http request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_ip", r.RemoteAddr,
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
