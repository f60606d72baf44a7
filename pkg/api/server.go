package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lgi/pkg/batch"
	"github.com/matzehuels/lgi/pkg/buildinfo"
	"github.com/matzehuels/lgi/pkg/errors"
	"github.com/matzehuels/lgi/pkg/lgi"
	"github.com/matzehuels/lgi/pkg/observability"
	"github.com/matzehuels/lgi/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address of [Server.ListenAndServe].
	DefaultAddr = "127.0.0.1:8080"

	// DefaultMaxInputs bounds the records of one translate request.
	DefaultMaxInputs = 100_000

	maxBodyBytes    = 64 << 20
	shutdownTimeout = 10 * time.Second
)

// Options configures a [Server].
type Options struct {
	Batch     batch.Options // Worker settings for translate requests
	MaxInputs int           // Default DefaultMaxInputs
	Logger    *log.Logger
}

// Server handles API requests on top of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
}

// New returns a server backed by runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxInputs <= 0 {
		opts.MaxInputs = DefaultMaxInputs
	}
	if opts.Logger == nil {
		opts.Logger = runner.Logger
	}
	return &Server{runner: runner, opts: opts, logger: opts.Logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)
		r.Post("/translate", s.handleTranslate)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, path, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", path, "status", status,
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type encodeRequest struct {
	Source    string `json:"source"`
	Input     string `json:"input"`
	Canonical *bool  `json:"canonical"`
}

// canonical reports the requested output mode. Omitted means canonical, as
// on the command line.
func canonical(b *bool) bool {
	return b == nil || *b
}

type encodeResponse struct {
	LGI string `json:"lgi"`
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Source == "" {
		req.Source = string(pipeline.DefaultSource)
	}
	from, err := pipeline.ParseFormat(req.Source)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.runner.Encode(r.Context(), req.Input, from, canonical(req.Canonical))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{LGI: out})
}

type decodeRequest struct {
	LGI string `json:"lgi"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := lgi.Decode(req.LGI)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

type translateRequest struct {
	Source    string   `json:"source"`
	Inputs    []string `json:"inputs"`
	Canonical *bool    `json:"canonical"`
	Seed      uint64   `json:"seed,omitempty"`
}

type translateResponse struct {
	RunID      string       `json:"run_id"`
	Outputs    []string     `json:"outputs"`
	Dropped    []batch.Drop `json:"dropped"`
	Total      int          `json:"total"`
	CacheHits  int          `json:"cache_hits"`
	DurationMS int64        `json:"duration_ms"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Inputs) > s.opts.MaxInputs {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "too many inputs: %d (max %d)", len(req.Inputs), s.opts.MaxInputs))
		return
	}
	src, err := lgi.ParseSource(req.Source)
	if req.Source == "" {
		src, err = pipeline.DefaultSource, nil
	}
	if err != nil {
		writeError(w, err)
		return
	}

	res, hits, err := s.runner.Translate(r.Context(), req.Inputs, pipeline.Options{
		Source:    src,
		Canonical: canonical(req.Canonical),
		Seed:      req.Seed,
		Batch:     s.opts.Batch,
		Logger:    s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := translateResponse{
		RunID:      res.RunID,
		Outputs:    res.Outputs,
		Dropped:    res.Dropped,
		Total:      res.Total,
		CacheHits:  hits,
		DurationMS: res.Duration.Milliseconds(),
	}
	if resp.Outputs == nil {
		resp.Outputs = []string{}
	}
	if resp.Dropped == nil {
		resp.Dropped = []batch.Drop{}
	}
	writeJSON(w, http.StatusOK, resp)
}
