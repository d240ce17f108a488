package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/config"
	"github.com/TobiSchelling/NewsCurator/internal/news"
	"github.com/TobiSchelling/NewsCurator/internal/pipeline"
	"github.com/TobiSchelling/NewsCurator/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const maxRecent = 20

// Server is the HTTP server for curating and browsing reports.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	pages    map[string]*template.Template
	mux      *http.ServeMux

	mu     sync.Mutex
	recent []*news.Report
}

// New creates a new Server.
func New(cfg *config.Config, p *pipeline.Pipeline) (*Server, error) {
	funcMap := template.FuncMap{
		"reportHTML": renderReport,
		"ago":        humanize.Time,
		"score":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"join":       strings.Join,
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// Each page gets its own clone of the base so "title" and "content"
	// definitions do not collide.
	pageNames := []string{"index.html", "report.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{cfg: cfg, pipeline: p, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/report", s.handleReport)
	s.mux.HandleFunc("/report.json", s.handleReportJSON)
	s.mux.HandleFunc("/reports/", s.handleRecentReport)
	s.mux.HandleFunc("/stats", s.handleStats)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.render(w, "index.html", map[string]any{
		"Reports":    s.recentReports(),
		"MaxResults": s.cfg.Curator.MaxSearchResults,
		"Categories": s.cfg.Curator.Categories,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.curate(w, r)
	if !ok {
		return
	}
	s.render(w, "report.html", map[string]any{"Report": rep})
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.curate(w, r)
	if !ok {
		return
	}
	out, err := report.JSON(rep)
	if err != nil {
		log.WithError(err).Error("Rendering JSON report")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	fmt.Fprintln(w, out)
}

func (s *Server) handleRecentReport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/reports/")
	if id == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	rep := s.findReport(id)
	if rep == nil {
		http.NotFound(w, r)
		return
	}
	s.render(w, "report.html", map[string]any{"Report": rep})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, s.pipeline.StatsSummary())
}

// curate runs the pipeline for the query parameters and records the report.
// It writes the error response itself and reports whether to continue.
func (s *Server) curate(w http.ResponseWriter, r *http.Request) (*news.Report, bool) {
	q := r.URL.Query()
	topics := pipeline.ParseTopics(q.Get("topics"))
	if len(topics) == 0 {
		http.Error(w, "at least one topic is required", http.StatusBadRequest)
		return nil, false
	}

	opts := pipeline.Options{
		MaxResults:       s.cfg.Curator.MaxSearchResults,
		Category:         strings.TrimSpace(q.Get("category")),
		AnalyzeSentiment: q.Get("sentiment") != "",
	}
	if v := q.Get("max"); v != "" {
		opts.MaxResults = pipeline.ParseMaxArticles(v)
	}
	if v := q.Get("min"); v != "" {
		opts.MinScore = pipeline.ParseMinScore(v)
	}

	res, err := s.pipeline.Run(r.Context(), topics, opts)
	if err != nil {
		log.WithError(err).WithField("topics", topics).Error("Curation request failed")
		http.Error(w, "Curation failed", http.StatusInternalServerError)
		return nil, false
	}

	s.remember(res.Report)
	return res.Report, true
}

func (s *Server) remember(rep *news.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append([]*news.Report{rep}, s.recent...)
	if len(s.recent) > maxRecent {
		s.recent = s.recent[:maxRecent]
	}
}

func (s *Server) recentReports() []*news.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*news.Report(nil), s.recent...)
}

func (s *Server) findReport(id string) *news.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rep := range s.recent {
		if rep.ID == id {
			return rep
		}
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Errorf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.WithError(err).Errorf("Error rendering template %s", name)
	}
}

func renderReport(rep *news.Report) template.HTML {
	out, err := report.HTML(rep)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(report.Text(rep)))
	}
	return template.HTML(out) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(cfg *config.Config, p *pipeline.Pipeline, port int) error {
	srv, err := New(cfg, p)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Infof("Server listening on http://%s", addr)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpSrv.ListenAndServe()
}
