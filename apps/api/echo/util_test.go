package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/booking"
	"github.com/unihive/unihive/core/catalog"
	"github.com/unihive/unihive/core/post"
	"github.com/unihive/unihive/core/rating"
	"github.com/unihive/unihive/core/review"
	"github.com/unihive/unihive/core/user"
	emailsvc "github.com/unihive/unihive/services/email"
	scoringsvc "github.com/unihive/unihive/services/scoring"
	inmemdb "github.com/unihive/unihive/storage/database/inmem"
)

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:                   "UniHive",
		Env:                       "TEST",
		TestMode:                  true,
		SecretKey:                 []byte("secret"),
		DefaultFromEmail:          "noreply@localhost",
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Scoring: core.ScoringConfig{
			BaseURL:       "http://127.0.0.1:1",
			Timeout:       time.Second,
			MaxResumeSize: 1 << 20,
		},
	}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type testApp struct {
	server *Server
	deps   ServerDeps
	db     *inmemdb.DB
}

func newTestApp(t *testing.T, scoringURL ...string) *testApp {
	t.Helper()

	conf := newTestConfig()
	if len(scoringURL) > 0 {
		conf.Scoring.BaseURL = scoringURL[0]
	}

	db, err := inmemdb.Open()
	require.NoError(t, err)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	scoringClient := scoringsvc.NewClient(conf.Scoring)

	deps := ServerDeps{
		Conf:       conf,
		Logger:     nopLogger{},
		UserSvc:    user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf),
		ReviewSvc:  review.NewService(inmemdb.NewReviewRepository(db)),
		PostSvc:    post.NewService(inmemdb.NewPostRepository(db)),
		BookingSvc: booking.NewService(inmemdb.NewBookingRepository(db)),
		CatalogSvc: catalog.NewService(inmemdb.NewCatalogRepository(db)),
		Fetcher:    rating.NewFetcher(scoringClient, rating.NewCache(), nopLogger{}),
		ScoringSvc: scoringClient,
		Validate:   validate,
		Translator: translator,
	}
	return &testApp{server: NewServer(deps), deps: deps, db: db}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (app *testApp) createUser(t *testing.T, name, uname, email, pwd string, roles []string) user.User {
	t.Helper()

	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		require.NoError(t, usr.SetPassword(pwd))
	}
	usr, err := inmemdb.NewUserRepository(app.db).CreateUser(context.Background(), usr)
	require.NoError(t, err)
	return usr
}

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(app.deps.Conf, usr)
	token, err := GenerateToken(app.deps.Conf, claims)
	require.NoError(t, err)
	return token
}

func (app *testApp) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
