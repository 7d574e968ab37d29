package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/deppfellow/go-banking/internal/errs"
	"github.com/deppfellow/go-banking/internal/logger"
	"github.com/deppfellow/go-banking/internal/model"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(rateLimit float64, out *bytes.Buffer) *server.Server {
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          rateLimit,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	l := zerolog.Nop()
	if out != nil {
		l = zerolog.New(out)
	}

	return &server.Server{
		Config:        cfg,
		Logger:        &l,
		LoggerService: logger.NewLoggerService(cfg.Observability),
	}
}

type failure struct {
	IsSuccess bool `json:"isSuccess"`
	IsFailure bool `json:"isFailure"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Status int `json:"status"`
}

func serveError(t *testing.T, method string, handlerErr error) (*httptest.ResponseRecorder, failure) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(newTestServer(0, nil)).GlobalErrorHandler
	e.Add(method, "/fail", func(c echo.Context) error { return handlerErr })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, "/fail", nil))

	var body failure
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "domain error keeps code and message",
			err:     model.ErrInsufficientBalance,
			status:  http.StatusUnprocessableEntity,
			code:    model.ErrInsufficientBalance.Code,
			message: model.ErrInsufficientBalance.Message,
		},
		{
			name:    "wrapped domain error",
			err:     errors.Join(errors.New("context"), model.ErrAccountNotFound),
			status:  http.StatusNotFound,
			code:    model.ErrAccountNotFound.Code,
			message: model.ErrAccountNotFound.Message,
		},
		{
			name:    "http error passes through",
			err:     errs.NewBadRequestError("bad input", true, nil, nil, nil),
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: "bad input",
		},
		{
			name:    "echo error",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			code:    "METHOD_NOT_ALLOWED",
			message: "Method Not Allowed",
		},
		{
			name:   "duplicate key",
			err:    gorm.ErrDuplicatedKey,
			status: http.StatusConflict,
			code:   "RECORD_ALREADY_EXISTS",
		},
		{
			name:    "unknown error is hidden",
			err:     errors.New("connection reset by peer"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveError(t, http.MethodGet, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.IsSuccess)
			assert.True(t, body.IsFailure)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Error.Message)
			}
		})
	}
}

func TestGlobalErrorHandler_Head(t *testing.T) {
	rec, _ := serveError(t, http.MethodHead, model.ErrAccountNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(0, &buf)

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/accounts/:iban", func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		logger.FromContext(c.Request().Context()).Info().Msg("from context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/DE89370400440532013000", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "from echo")
	assert.Contains(t, out, "from context")
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"path":"/accounts/:iban"`)
}

func TestGetLogger_WithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotPanics(t, func() { GetLogger(c).Info().Msg("dropped") })
}

func TestRateLimiter(t *testing.T) {
	newEcho := func(limit float64) *echo.Echo {
		s := newTestServer(limit, nil)
		e := echo.New()
		e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
		e.Use(NewRateLimitMiddleware(s).RateLimiter())
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
		return e
	}

	limited := newEcho(1)
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isFailure":true`)

	unlimited := newEcho(0)
	for range 5 {
		rec = httptest.NewRecorder()
		unlimited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
