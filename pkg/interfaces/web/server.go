// Package web hosts the calculator over HTTP: an HTML page that recomputes on
// every form change, a JSON API and the two charts as SVG.
package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/vsinha/storecalc/pkg/application/services"
	"github.com/vsinha/storecalc/pkg/infrastructure/config"
	"github.com/vsinha/storecalc/pkg/infrastructure/logging"
)

const defaultRequestTimeout = 30 * time.Second

// Options configures the HTTP host
type Options struct {
	Locale         language.Tag
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

// Server serves the calculator. It holds no per-user state: every request
// carries the full form.
type Server struct {
	calculator *services.CalculatorService
	locale     language.Tag
	logger     *zap.Logger
	timeout    time.Duration
	page       *template.Template
}

// NewServer creates the HTTP host for a calculator service
func NewServer(calculator *services.CalculatorService, opts Options) (*Server, error) {
	page, err := parsePage()
	if err != nil {
		return nil, err
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Server{
		calculator: calculator,
		locale:     opts.Locale,
		logger:     logging.OrNop(opts.Logger),
		timeout:    timeout,
		page:       page,
	}, nil
}

// Router builds the chi router with the middleware stack and every route
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(RequestLogger(s.logger))
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(s.timeout))

	router.Get("/", s.handlePage)
	router.Get("/reset", s.handleReset)
	router.Get("/healthz", s.handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Get("/calculate", s.handleCalculateQuery)
		r.Post("/calculate", s.handleCalculateJSON)
		r.Get("/currencies", s.handleCurrencies)
		r.Get("/defaults", s.handleDefaults)
	})

	router.Route("/charts", func(r chi.Router) {
		r.Get("/financial.svg", s.handleFinancialChart)
		r.Get("/distribution.svg", s.handleDistributionChart)
	})

	return router
}

// NewHTTPServer wraps handler in an http.Server using the configured timeouts
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
