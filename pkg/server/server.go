package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/yurifrl/rateio/pkg/csv"
	"github.com/yurifrl/rateio/pkg/dashboard"
	"github.com/yurifrl/rateio/pkg/locale"
	"github.com/yurifrl/rateio/pkg/models"
	"github.com/yurifrl/rateio/pkg/service"
)

//go:embed templates/*.html
var templates embed.FS

// Loader is the load boundary the server reads snapshots from.
type Loader interface {
	Snapshot() *service.Snapshot
	LastError() error
	Reload(ctx context.Context) (*service.Snapshot, error)
}

// Server serves the rateio dashboard as HTML and JSON.
type Server struct {
	loader   Loader
	logger   *log.Logger
	mux      *http.ServeMux
	template *template.Template
	reloads  singleflight.Group
}

// New creates a new HTTP server
func New(loader Loader, logger *log.Logger) *Server {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"brl":     locale.FormatAmount,
		"slug":    locale.Slugify,
		"paid":    locale.FormatPaid,
		"initial": initial,
		"date":    paymentDate,
	}).ParseFS(templates, "templates/*.html"))

	s := &Server{
		loader:   loader,
		logger:   logger,
		mux:      http.NewServeMux(),
		template: tmpl,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) setupRoutes() {
	// html
	s.mux.HandleFunc("/", s.withLogging(s.handleHome))
	s.mux.HandleFunc("/reload", s.withLogging(s.handleReloadForm))

	// api
	s.mux.HandleFunc("/api/dashboard", s.withLogging(s.handleDashboard))
	s.mux.HandleFunc("/api/reload", s.withLogging(s.handleReload))
	s.mux.HandleFunc("/api/export.csv", s.withLogging(s.handleExport))
	s.mux.HandleFunc("/healthz", s.withLogging(s.handleHealth))
}

type page struct {
	View      *dashboard.View
	Collapse  dashboard.CollapseState
	Statuses  []dashboard.Status
	Error     string
	LoadedAt  time.Time
	ReloadURL template.URL
	ExportURL template.URL
	// ToggleAllURL expands every year when all are collapsed, otherwise
	// collapses them all.
	ToggleAllURL template.URL
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.respondError(w, r, http.StatusNotFound, "not found", nil)
		return
	}
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	filters, err := filtersFrom(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	snap := s.loader.Snapshot()
	view := snap.View(filters)
	collapse := collapseFrom(r.URL.Query(), snap, view.ByYear)

	toggle := filterValues(filters)
	toggle.Set(paramOpenYears, openYears(collapse.ToggleAll(view.ByYear), view.ByYear))

	data := page{
		View:         view,
		Collapse:     collapse,
		Statuses:     dashboard.Statuses,
		LoadedAt:     snap.LoadedAt,
		ReloadURL:    template.URL(withQuery("/reload", filterValues(filters))),
		ExportURL:    template.URL(withQuery("/api/export.csv", filterValues(filters))),
		ToggleAllURL: template.URL(withQuery("/", toggle)),
	}
	if err := s.loader.LastError(); err != nil {
		data.Error = err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.template.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Warn("failed to render page", "err", err)
	}
}

func (s *Server) handleReloadForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	// a failure is shown by the page through LastError
	_, _ = s.reload(r.Context())

	target := "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	filters, err := filtersFrom(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	snap := s.loader.Snapshot()
	body := map[string]any{
		"status":      "success",
		"loaded_at":   snap.LoadedAt,
		"view":        snap.View(filters),
		"collapsed":   snap.Collapse(),
		"diagnostics": snap.Diagnostics,
	}
	if err := s.loader.LastError(); err != nil {
		body["error"] = err.Error()
	}
	if err := s.writeJSON(w, http.StatusOK, body); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	snap, err := s.reload(r.Context())
	if err != nil {
		s.respondError(w, r, http.StatusBadGateway, err.Error(), err)
		return
	}
	if err := s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"seq":       snap.Seq,
		"current":   snap.Current,
		"records":   len(snap.Records),
		"issues":    len(snap.Diagnostics),
		"loaded_at": snap.LoadedAt,
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	filters, err := filtersFrom(r)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	history := dashboard.History(s.loader.Snapshot().Records, filters)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rateio.csv"`)
	if _, err := w.Write(csv.Create(history, nil)); err != nil {
		s.logger.Warn("failed to write csv response", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// reload coalesces concurrent reload requests into one load. The load is
// detached from the request so one client hanging up does not cancel it for
// the others.
func (s *Server) reload(ctx context.Context) (*service.Snapshot, error) {
	v, err, shared := s.reloads.Do("reload", func() (any, error) {
		return s.loader.Reload(context.WithoutCancel(ctx))
	})
	if shared {
		s.logger.Debug("reload shared with a concurrent request")
	}
	snap, _ := v.(*service.Snapshot)
	return snap, err
}

// --- helpers ---

func filtersFrom(r *http.Request) (dashboard.Filters, error) {
	q := r.URL.Query()
	filters := dashboard.DefaultFilters()
	if p := strings.TrimSpace(q.Get("pessoa")); p != "" {
		filters.Participant = p
	}
	status, err := dashboard.ParseStatus(q.Get("status"))
	if err != nil {
		return filters, err
	}
	filters.Status = status
	return filters, nil
}

// paramOpenYears lists the expanded years, comma separated. Without it the
// page starts from the snapshot's initial folding.
const paramOpenYears = "abertos"

func filterValues(f dashboard.Filters) url.Values {
	v := url.Values{}
	if f != dashboard.DefaultFilters() {
		v.Set("pessoa", f.Participant)
		v.Set("status", string(f.Status))
	}
	return v
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func collapseFrom(q url.Values, snap *service.Snapshot, groups []dashboard.YearGroup) dashboard.CollapseState {
	if _, ok := q[paramOpenYears]; !ok {
		return snap.Collapse()
	}
	open := make(map[int]bool)
	for _, part := range strings.Split(q.Get(paramOpenYears), ",") {
		if year, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			open[year] = true
		}
	}
	state := make(dashboard.CollapseState, len(groups))
	for _, g := range groups {
		state[g.Year] = !open[g.Year]
	}
	return state
}

func openYears(state dashboard.CollapseState, groups []dashboard.YearGroup) string {
	years := make([]string, 0, len(groups))
	for _, g := range groups {
		if !state.Collapsed(g.Year) {
			years = append(years, strconv.Itoa(g.Year))
		}
	}
	return strings.Join(years, ",")
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func paymentDate(r *models.Record) string {
	if d, ok := r.PaymentDate(); ok {
		return d
	}
	return "-"
}

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
				return
			}
			s.logger.Debug("http request done", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
		}()
		next(w, r)
	}
}
