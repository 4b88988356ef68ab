package httpx

import (
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adeilh/go-rakh-status/httpx/statusclass"
)

// TallyMiddleware records the final status class of every response. Handler
// errors are resolved through the server's error handler first so the
// recorded code is the one written to the client.
func TallyMiddleware(t *ClassTally) MiddlewareFunc {
	if t == nil {
		return func(next HandlerFunc) HandlerFunc { return next }
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}
			t.Observe(c.Response().Status)
			return nil
		}
	}
}

// ZapRequestLogger logs one structured entry per request. The level follows
// the response class: server errors and unknown codes log at error, client
// errors at warn, everything else at info.
func ZapRequestLogger(logger *zap.Logger) MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c Context, v middleware.RequestLoggerValues) error {
			class := statusclass.ClassOf(v.Status)
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.String("class", class.Label()),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Log(levelForClass(class), "request", fields...)
			return nil
		},
	})
}

func levelForClass(class StatusClass) zapcore.Level {
	switch class {
	case statusclass.ServerError, statusclass.Unknown:
		return zap.ErrorLevel
	case statusclass.ClientError:
		return zap.WarnLevel
	default:
		return zap.InfoLevel
	}
}
