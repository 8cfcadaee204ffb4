package echoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core/catalog"
	"github.com/unihive/unihive/core/rating"
	"github.com/unihive/unihive/core/user"
	inmemdb "github.com/unihive/unihive/storage/database/inmem"
)

var testCourse = catalog.Course{
	ID:         "course-cs101",
	Name:       "Introduction to Computer Science",
	Code:       "CS101",
	Instructor: "Dr. Amina Diallo",
	Credits:    6,
}

func seedCatalog(app *testApp) {
	inmemdb.NewCatalogRepository(app.db).Seed([]catalog.Course{testCourse}, nil)
}

func newScoringStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func Test_entityApi_ratingBeforeAnyFetch(t *testing.T) {
	app := newTestApp(t)
	seedCatalog(app)
	usr := app.createUser(t, "John Doe", "jdoe", "jdoe@campus.test", "pwd", []string{user.RoleStudent})
	token := app.getToken(t, usr)

	t.Run("no reviews shows as unrated", func(t *testing.T) {
		rec := app.request(http.MethodGet, "/v1/courses/"+testCourse.ID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var res CourseResponse
		decodeBody(t, rec, &res)
		assert.False(t, res.Rating.Loading)
		assert.Zero(t, res.Rating.Value)
		assert.Equal(t, "0 reviews", res.Rating.Label)
	})

	t.Run("local reviews average in", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/v1/reviews", token, map[string]interface{}{
			"entity_type": "course",
			"entity_id":   testCourse.ID,
			"rating":      4,
			"content":     "Well structured.",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = app.request(http.MethodGet, "/v1/courses/"+testCourse.ID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var res CourseResponse
		decodeBody(t, rec, &res)
		assert.Equal(t, 4.0, res.Rating.Value)
		assert.Equal(t, "1 review", res.Rating.Label)
	})
}

func Test_entityApi_externalScoreWins(t *testing.T) {
	srv := newScoringStub(t, `{"success": true, "rating": 4.6, "match_details": "Good fit"}`)
	app := newTestApp(t, srv.URL)
	seedCatalog(app)
	usr := app.createUser(t, "John Doe", "jdoe", "jdoe@campus.test", "pwd", []string{user.RoleStudent})

	// a local review that the external score must shadow
	rec := app.request(http.MethodPost, "/v1/reviews", app.getToken(t, usr), map[string]interface{}{
		"entity_type": "course",
		"entity_id":   testCourse.ID,
		"rating":      1,
		"content":     "Disagree with the robots.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	targets, err := app.deps.CatalogSvc.ScoringTargets(context.Background())
	require.NoError(t, err)
	app.deps.Fetcher.FetchAll(context.Background(), targets)

	rec = app.request(http.MethodGet, "/v1/courses/"+testCourse.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res CourseResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, 4.6, res.Rating.Value)
	assert.Equal(t, rating.LabelExternal, res.Rating.Label)
}

func Test_entityApi_failedFetchFallsBackToNeutral(t *testing.T) {
	app := newTestApp(t) // scoring service unreachable
	seedCatalog(app)

	targets, err := app.deps.CatalogSvc.ScoringTargets(context.Background())
	require.NoError(t, err)
	app.deps.Fetcher.FetchAll(context.Background(), targets)

	rec := app.request(http.MethodGet, "/v1/courses/"+testCourse.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res CourseResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, rating.NeutralDefault, res.Rating.Value)
	assert.Equal(t, rating.LabelOffline, res.Rating.Label)
}

func Test_entityApi_personalizedLabel(t *testing.T) {
	srv := newScoringStub(t, `{"success": true, "rating": 4.9, "match_details": "Matches your skills"}`)
	app := newTestApp(t, srv.URL)
	seedCatalog(app)

	app.deps.Fetcher.SetPersonalized(true)
	targets, err := app.deps.CatalogSvc.ScoringTargets(context.Background())
	require.NoError(t, err)
	app.deps.Fetcher.FetchAll(context.Background(), targets)

	rec := app.request(http.MethodGet, "/v1/courses/"+testCourse.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res CourseResponse
	decodeBody(t, rec, &res)
	assert.Equal(t, rating.LabelPersonalized, res.Rating.Label)
}

func Test_entityApi_refreshRatings(t *testing.T) {
	app := newTestApp(t)
	seedCatalog(app)
	usr := app.createUser(t, "John Doe", "jdoe", "jdoe@campus.test", "pwd", []string{user.RoleStudent})

	t.Run("requires auth", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/v1/ratings/refresh", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	rec := app.request(http.MethodPost, "/v1/ratings/refresh", app.getToken(t, usr), nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
