package httpx

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// HTTPErrorHandler is a function that handles errors during request processing.
type HTTPErrorHandler = echo.HTTPErrorHandler

type ServerOptions struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Middlewares  []MiddlewareFunc
	ErrorHandler HTTPErrorHandler
	Validators   []Validator
	CORS         *middleware.CORSConfig
	Logger       echo.Logger
	Tally        *ClassTally
}

type ServerOption func(*ServerOptions)

func defaultServerOptions() ServerOptions {
	return ServerOptions{
		Address:      ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		Middlewares:  []MiddlewareFunc{RecoverMiddleware(), LoggerMiddleware()},
		ErrorHandler: defaultHTTPErrorHandler,
	}
}

func WithAddress(addr string) ServerOption {
	return func(o *ServerOptions) {
		if addr != "" {
			o.Address = addr
		}
	}
}

func WithTimeouts(read, write time.Duration) ServerOption {
	return func(o *ServerOptions) {
		if read > 0 {
			o.ReadTimeout = read
		}
		if write > 0 {
			o.WriteTimeout = write
		}
	}
}

func WithMiddlewares(mw ...MiddlewareFunc) ServerOption {
	return func(o *ServerOptions) {
		if len(mw) > 0 {
			o.Middlewares = append([]MiddlewareFunc{}, mw...)
		}
	}
}

// AppendMiddlewares appends additional middleware to the existing stack.
func AppendMiddlewares(mw ...MiddlewareFunc) ServerOption {
	return func(o *ServerOptions) {
		if len(mw) > 0 {
			o.Middlewares = append(o.Middlewares, mw...)
		}
	}
}

func WithErrorHandler(handler HTTPErrorHandler) ServerOption {
	return func(o *ServerOptions) {
		if handler != nil {
			o.ErrorHandler = handler
		}
	}
}

// WithValidators installs request-level validators executed before route handlers.
func WithValidators(v ...Validator) ServerOption {
	return func(o *ServerOptions) {
		if len(v) > 0 {
			o.Validators = append([]Validator{}, v...)
		}
	}
}

// WithCORS enables CORS middleware using the provided configuration; if cfg is nil, the default config is used.
func WithCORS(cfg *middleware.CORSConfig) ServerOption {
	return func(o *ServerOptions) {
		if cfg == nil {
			def := middleware.DefaultCORSConfig
			o.CORS = &def
			return
		}
		o.CORS = cfg
	}
}

// WithLogger replaces echo's internal logger.
func WithLogger(l echo.Logger) ServerOption {
	return func(o *ServerOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithZapLogger swaps echo's plain-text request logger for ZapRequestLogger.
func WithZapLogger(l *zap.Logger) ServerOption {
	return func(o *ServerOptions) {
		if l == nil {
			return
		}
		o.Middlewares = []MiddlewareFunc{RecoverMiddleware(), ZapRequestLogger(l)}
	}
}

// WithClassTally records the status class of every response into t.
func WithClassTally(t *ClassTally) ServerOption {
	return func(o *ServerOptions) {
		o.Tally = t
	}
}

type ClientOptions struct {
	BaseURL      string
	Timeout      time.Duration
	Headers      map[string]string
	RestyConfig  func(RestClient)
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	Tally        *ClassTally
}

type ClientOption func(*ClientOptions)

func defaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:      10 * time.Second,
		Headers:      map[string]string{"Content-Type": "application/json"},
		RetryWait:    100 * time.Millisecond,
		RetryMaxWait: 2 * time.Second,
	}
}

func WithBaseURL(url string) ClientOption {
	return func(o *ClientOptions) {
		if url != "" {
			o.BaseURL = url
		}
	}
}

func WithClientTimeout(d time.Duration) ClientOption {
	return func(o *ClientOptions) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

func WithHeaders(headers map[string]string) ClientOption {
	return func(o *ClientOptions) {
		if len(headers) == 0 {
			return
		}
		o.Headers = make(map[string]string, len(headers))
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

func WithRestyConfig(fn func(RestClient)) ClientOption {
	return func(o *ClientOptions) {
		o.RestyConfig = fn
	}
}

// WithRetry retries transport failures and Server Error responses up to
// count times, backing off between wait and twice wait.
func WithRetry(count int, wait time.Duration) ClientOption {
	return func(o *ClientOptions) {
		if count <= 0 {
			return
		}
		o.RetryCount = count
		if wait > 0 {
			o.RetryWait = wait
			o.RetryMaxWait = 2 * wait
		}
	}
}

// WithResponseTally records the status class of every response the client
// receives, retried attempts included.
func WithResponseTally(t *ClassTally) ClientOption {
	return func(o *ClientOptions) {
		o.Tally = t
	}
}
