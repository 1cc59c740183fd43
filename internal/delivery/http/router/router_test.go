package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pgbee/config"
	"pgbee/internal/delivery/http/middleware"
	"pgbee/internal/delivery/http/router/handler"
	"pgbee/internal/delivery/http/validator"
	"pgbee/internal/domain/constants"
	"pgbee/internal/infra/auth"
	"pgbee/internal/infra/cache"
	"pgbee/internal/mocks/memory"
	mockService "pgbee/internal/mocks/service"
	"pgbee/internal/usecase"
	"pgbee/internal/usecase/impl"
)

type envelope struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	echo  *echo.Echo
	store *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret", Session: "session"},
		Auth:      &config.AuthConfig{CookieSecure: true},
	}

	store := memory.NewStore()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	tokens, err := auth.NewJWTService(cfg, logger)
	require.NoError(t, err)
	oauth := mockService.NewMockOAuthService(t)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		Config:       cfg,
		TxManager:    store.TransactionManager(),
		UserRepo:     store.Users(),
		SessionRepo:  store.Sessions(),
		Hasher:       hasher,
		TokenService: tokens,
		OAuthService: oauth,
		StateStore:   cache.NewMemoryStateStore(time.Now),
		Providers:    []usecase.AuthProvider{impl.NewLocalProvider(store.Users(), hasher)},
		Logger:       logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Config: cfg, Logger: logger}),
		HostelHandler:  handler.NewHostelHandler(handler.HostelHandlerParams{Logger: logger}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{Logger: logger}),
		ReviewHandler:  handler.NewReviewHandler(handler.ReviewHandlerParams{Logger: logger}),
		ListingHandler: handler.NewListingHandler(handler.ListingHandlerParams{Logger: logger}),
		EnquiryHandler: handler.NewEnquiryHandler(handler.EnquiryHandlerParams{Logger: logger}),
		FileHandler:    handler.NewFileHandler(handler.FileHandlerParams{Logger: logger}),
		AuthMiddleware: middleware.NewAuthMiddleware(authUC, logger),
	}).RegisterRoutes(e)

	return &testApp{echo: e, store: store}
}

func (a *testApp) do(t *testing.T, method, path, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, fn := range mutate {
		fn(req)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) {
		r.AddCookie(c)
	}
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.RefreshCookieName {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", constants.RefreshCookieName)

	return nil
}

const signupBody = `{"name":"Asha","email":"asha@example.com","password":"s3cret-pass","phoneNo":"9876543210","role":"student"}`

func TestRouter_SignupLoginAndAccess(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, http.MethodPost, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.OK)
	assert.Equal(t, "User created successfully", env.Message)
	assert.Contains(t, string(env.Data), `"email":"asha@example.com"`)
	assert.NotContains(t, string(env.Data), "password")

	rec, env = app.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User logged in successfully", env.Message)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	cookie := refreshCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)

	rec, env = app.do(t, http.MethodGet, "/auth/me", "", bearer(login.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"role":"student"`)

	truncated := login.AccessToken[:len(login.AccessToken)-1]
	rec, env = app.do(t, http.MethodGet, "/auth/me", "", bearer(truncated))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.OK)
	assert.Equal(t, "null", string(env.Data))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/hostel", "/owner", "/student", "/review/user", "/enquiry", "/file"} {
		rec, env := app.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Unauthorized access", env.Message, path)
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/auth/signup", signupBody)

	rec, env := app.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)

	rec, env = app.do(t, http.MethodPost, "/auth/login", `{"email":"nobody@example.com","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestRouter_SignupValidation(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, http.MethodPost, "/auth/signup", `{"name":"Asha","email":"not-an-email","password":"x","phoneNo":"1","role":"student"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input data. email must be a valid email", env.Message)

	rec, env = app.do(t, http.MethodPost, "/auth/signup", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.HasPrefix(env.Message, "Invalid input data."))

	app.do(t, http.MethodPost, "/auth/signup", signupBody)
	rec, env = app.do(t, http.MethodPost, "/auth/signup", signupBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duplicate field value: email", env.Message)
}

func TestRouter_RefreshRotatesAndLogoutRevokes(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/auth/signup", signupBody)

	rec, _ := app.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"s3cret-pass"}`)
	first := refreshCookie(t, rec)

	rec, env := app.do(t, http.MethodPost, "/auth/token/refresh", "", withCookie(first))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Token refreshed successfully", env.Message)
	second := refreshCookie(t, rec)
	assert.NotEqual(t, first.Value, second.Value)

	// Replaying the rotated token is refused and ends the live session too.
	rec, _ = app.do(t, http.MethodPost, "/auth/token/refresh", "", withCookie(first))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, app.store.SessionCount())

	rec, _ = app.do(t, http.MethodPost, "/auth/token/refresh", "", withCookie(second))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = app.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"s3cret-pass"}`)
	third := refreshCookie(t, rec)
	require.Equal(t, 1, app.store.SessionCount())

	rec, env = app.do(t, http.MethodPost, "/auth/logout", `{"refreshToken":"`+third.Value+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", env.Message)
	assert.Equal(t, "{}", string(env.Data))
	assert.Negative(t, refreshCookie(t, rec).MaxAge)
	assert.Zero(t, app.store.SessionCount())

	rec, _ = app.do(t, http.MethodPost, "/auth/token/refresh", `{"refreshToken":"`+third.Value+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RefreshCookieDoesNotAuthenticate(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/auth/signup", signupBody)

	rec, _ := app.do(t, http.MethodPost, "/auth/login", `{"email":"asha@example.com","password":"s3cret-pass"}`)
	cookie := refreshCookie(t, rec)

	rec, env := app.do(t, http.MethodGet, "/auth/me", "", withCookie(cookie))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized access", env.Message)
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec, env := app.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route /nope not found", env.Message)
	assert.False(t, env.OK)
}
