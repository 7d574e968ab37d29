package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/deppfellow/go-banking/internal/database"
	"github.com/deppfellow/go-banking/internal/database/seed"
	"github.com/deppfellow/go-banking/internal/handler"
	"github.com/deppfellow/go-banking/internal/lib/health"
	"github.com/deppfellow/go-banking/internal/logger"
	"github.com/deppfellow/go-banking/internal/repository"
	"github.com/deppfellow/go-banking/internal/server"
	"github.com/deppfellow/go-banking/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	IsFailure bool            `json:"isFailure"`
	Value     json.RawMessage `json:"value"`
	Error     struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			CORSAllowedOrigins: []string{"*"},
		},
		Database:      config.DatabaseConfig{Driver: config.DriverMemory},
		Observability: config.DefaultObservabilityConfig(),
	}

	db, err := database.OpenMemory(&gorm.Config{Logger: gormlogger.Discard, TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &l, cfg, db, repository.Models()...))

	repos := repository.NewRepositories(db.DB)
	_, err = seed.Demo(ctx, repos, &l, seed.DemoData)
	require.NoError(t, err)

	loggerService := logger.NewLoggerService(cfg.Observability)
	s := &server.Server{
		Config:        cfg,
		Logger:        &l,
		LoggerService: loggerService,
		DB:            db,
		Health:        health.NewChecker(cfg.Primary.Env, time.Second, loggerService),
	}
	s.Health.Register(server.CheckDatabase, true, db.Ping)

	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func call(t *testing.T, r *echo.Echo, method, path, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestRouter_AccountOpening(t *testing.T) {
	r := newTestRouter(t)

	status, env := call(t, r, http.MethodGet, "/api/v1/account-opening/customers", "")
	require.Equal(t, http.StatusOK, status)
	var customers []map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &customers))
	assert.Len(t, customers, len(seed.DemoData))

	status, env = call(t, r, http.MethodPost, "/api/v1/account-opening/customers", `{"firstName":"Erika","lastName":"Mustermann"}`)
	require.Equal(t, http.StatusCreated, status)
	var created map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &created))
	number := created["customerNumber"]
	assert.Len(t, number, 5)

	status, _ = call(t, r, http.MethodPost, "/api/v1/account-opening/accounts",
		`{"customerNumber":"`+number+`","iban":"GB29NWBK60161331926819","balance":"10.00"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env = call(t, r, http.MethodPost, "/api/v1/account-opening/accounts",
		`{"customerNumber":"`+number+`","iban":"GB29NWBK60161331926819","balance":"10.00"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "AccountOpening.AccountAlreadyExists", env.Error.Code)

	status, env = call(t, r, http.MethodGet, "/api/v1/account-opening/accounts/GB29NWBK60161331926819", "")
	require.Equal(t, http.StatusOK, status)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &details))
	assert.Equal(t, "Erika", details["firstName"])
	assert.Equal(t, "10.00", details["balance"])

	status, env = call(t, r, http.MethodGet, "/api/v1/account-opening/customers/"+number+"/accounts", "")
	require.Equal(t, http.StatusOK, status)
	var accounts []map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &accounts))
	assert.Len(t, accounts, 1)
}

func TestRouter_AccountOperation(t *testing.T) {
	r := newTestRouter(t)
	const (
		from = "DE89370400440532013000"
		to   = "DE62370400440532013001"
	)

	status, env := call(t, r, http.MethodPost, "/api/v1/account-operation/transfers",
		`{"fromIban":"`+from+`","toIban":"`+to+`","amount":"100.50"}`)
	require.Equal(t, http.StatusOK, status)
	var receipt map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &receipt))
	assert.Equal(t, "900.00", receipt["balance"])

	status, env = call(t, r, http.MethodPost, "/api/v1/account-operation/transfers",
		`{"fromIban":"`+from+`","toIban":"`+to+`","amount":"10000"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "AccountOperation.InsufficientBalance", env.Error.Code)

	status, _ = call(t, r, http.MethodPost, "/api/v1/account-operation/accounts/"+to+"/deposit", `{"amount":"0.001"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, r, http.MethodPost, "/api/v1/account-operation/accounts/"+to+"/withdraw", `{"amount":"0.50"}`)
	require.Equal(t, http.StatusOK, status)
	var balance map[string]string
	require.NoError(t, json.Unmarshal(env.Value, &balance))
	assert.Equal(t, "2100.00", balance["balance"])

	status, env = call(t, r, http.MethodGet, "/api/v1/account-operation/accounts/"+to+"/bookings", "")
	require.Equal(t, http.StatusOK, status)
	var bookings []map[string]any
	require.NoError(t, json.Unmarshal(env.Value, &bookings))
	require.Len(t, bookings, 2)
	assert.Equal(t, "deposit", bookings[0]["kind"])
	assert.Equal(t, "withdrawal", bookings[1]["kind"])

	status, env = call(t, r, http.MethodPost, "/api/v1/account-operation/accounts/GB29NWBK60161331926819/deposit", `{"amount":"1"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "AccountOperation.AccountNotFound", env.Error.Code)
}

func TestRouter_System(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/openapi.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isFailure":true`)
}
