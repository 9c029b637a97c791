// HTTP surface for the scoring engine.
//
// Stateless scoring (/score, /validate, /reconstruct), in-memory game
// sessions (/games/*), scoresheet upload (/scoresheets) and Prometheus
// metrics (/metrics). Engine rejections come back as 422 with a
// machine-readable reason.

package httpserver

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/xtding233/bowling-backend/internal/bowling"
	"github.com/xtding233/bowling-backend/internal/metrics"
	"github.com/xtding233/bowling-backend/internal/scoresheet"
	"github.com/xtding233/bowling-backend/internal/store"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Store          store.Store
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Tracer         trace.Tracer
	Logger         zerolog.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
	RateRPS        float64
	RateBurst      int
	MinConfidence  bowling.Confidence
}

// Server bundles router, session store and observability hooks.
type Server struct {
	r       chi.Router
	store   store.Store
	metrics *metrics.Metrics
	tracer  trace.Tracer
	log     zerolog.Logger
	limiter *IPRateLimiter
	minConf atomic.Int32
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("bowling")
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   opts.Store,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		log:     opts.Logger,
		limiter: NewIPRateLimiter(rate.Limit(opts.RateRPS), opts.RateBurst),
	}
	s.minConf.Store(int32(opts.MinConfidence))

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(s.log))
	s.r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	if len(opts.CORSOrigins) > 0 {
		s.r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
	}

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	if opts.Gatherer != nil {
		s.r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	s.r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))
		r.Use(jsonContentType)

		r.Post("/score", s.handleScore)
		r.Post("/validate", s.handleValidate)
		r.Post("/reconstruct", s.handleReconstruct)
		r.Post("/scoresheets", s.handleScoresheet)

		r.Route("/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Get("/", s.handleListGames)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGame)
				r.Delete("/", s.handleDeleteGame)
				r.Post("/rolls", s.handleRoll)
				r.Put("/frames/{frame}/rolls/{position}", s.handleSetRoll)
				r.Post("/reconstruct", s.handleMergeTotals)
				r.Get("/chart.png", s.handleChart)
			})
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// SetRateLimit applies new limits to every client.
func (s *Server) SetRateLimit(rps float64, burst int) {
	s.limiter.SetLimit(rate.Limit(rps), burst)
}

// SetMinConfidence changes the warning threshold for imported sheets.
func (s *Server) SetMinConfidence(c bowling.Confidence) {
	s.minConf.Store(int32(c))
}

func (s *Server) sheetOptions() scoresheet.Options {
	return scoresheet.Options{MinConfidence: bowling.Confidence(s.minConf.Load())}
}

// span starts a handler span tagged with the route and request id.
func (s *Server) span(r *http.Request, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("http.route", name),
		attribute.String("request_id", chimw.GetReqID(r.Context())),
	)
	return s.tracer.Start(r.Context(), name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
