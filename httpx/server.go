package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Validator runs before route handlers; return an error to stop the pipeline.
type Validator func(Context) error

// Server runs an App behind a net/http server with graceful shutdown.
type Server struct {
	app      *App
	address  string
	srv      *http.Server
	shutdown time.Duration
}

// RouteRegistrar registers routes on the server's App.
type RouteRegistrar func(*App)

// StartOption tunes Start.
type StartOption func(*Server)

// WithShutdownTimeout bounds how long Start waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) StartOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdown = d
		}
	}
}

// NewServer builds a Server from the defaults and opts.
func NewServer(opts ...ServerOption) *Server {
	cfg := defaultServerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	app := New()
	e := app.e
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = cfg.ErrorHandler
	if cfg.Logger != nil {
		e.Logger = cfg.Logger
	}
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	// Outermost, so responses written by the recover middleware are counted.
	if cfg.Tally != nil {
		e.Use(TallyMiddleware(cfg.Tally))
	}
	for _, mw := range cfg.Middlewares {
		e.Use(mw)
	}
	if cfg.CORS != nil {
		e.Use(CORSMiddleware(cfg.CORS))
	}
	if len(cfg.Validators) > 0 {
		e.Use(validatorMiddleware(cfg.Validators...))
	}

	return &Server{
		app:      app,
		address:  cfg.Address,
		shutdown: 5 * time.Second,
	}
}

// RegisterRoutes hands the App to reg.
func (s *Server) RegisterRoutes(reg RouteRegistrar) {
	if reg != nil {
		reg(s.app)
	}
}

// Handler exposes the server as an http.Handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.app.e
}

// Start serves until ctx is cancelled, then shuts down gracefully and
// returns ctx.Err(). A listener failure is returned as is.
func (s *Server) Start(ctx context.Context, opts ...StartOption) error {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.srv = &http.Server{
		Addr:         s.address,
		Handler:      s.app.e,
		ReadTimeout:  s.app.e.Server.ReadTimeout,
		WriteTimeout: s.app.e.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// defaultHTTPErrorHandler writes {"error": ..., "class": ...}. When the error
// carries no reason text the class label of the code stands in for it.
func defaultHTTPErrorHandler(err error, c echo.Context) {
	code := StatusInternalError
	msg := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case nil:
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprint(m)
		}
	}
	// net/http refuses to write codes outside [100, 999].
	if code < 100 || code > 999 {
		code = StatusInternalError
	}
	if msg == "" {
		msg = ReasonPhrase(code)
	}
	if !c.Response().Committed {
		_ = c.JSON(code, map[string]any{"error": msg, "class": ClassOf(code).Label()})
	}
}

func validatorMiddleware(v ...Validator) MiddlewareFunc {
	copied := append([]Validator(nil), v...)
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			for _, validator := range copied {
				if validator == nil {
					continue
				}
				if err := validator(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}
