package scoringsvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/rating"
)

func newTestClient(url string) *Client {
	return NewClient(core.ScoringConfig{
		BaseURL:       url,
		Timeout:       2 * time.Second,
		MaxResumeSize: 1 << 20,
	})
}

func TestRate(t *testing.T) {
	target := rating.Target{
		Type:    "course",
		ID:      "CS101",
		Payload: map[string]interface{}{"name": "Intro to Computer Science"},
	}

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/getRating", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"success": true, "rating": 4.3, "match_details": "Strong fit"}`))
		}))
		defer srv.Close()

		value, details, err := newTestClient(srv.URL).Rate(context.Background(), target)
		require.NoError(t, err)
		assert.Equal(t, 4.3, value)
		assert.Equal(t, "Strong fit", details)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, _, err := newTestClient(srv.URL).Rate(context.Background(), target)
		assert.EqualError(t, err, "rating request: unexpected status 500")
	})

	t.Run("malformed body fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": true, "rating"`))
		}))
		defer srv.Close()

		_, _, err := newTestClient(srv.URL).Rate(context.Background(), target)
		assert.Error(t, err)
	})

	t.Run("success=false fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "message": "model unavailable"}`))
		}))
		defer srv.Close()

		_, _, err := newTestClient(srv.URL).Rate(context.Background(), target)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model unavailable")
	})

	t.Run("missing rating value fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": true}`))
		}))
		defer srv.Close()

		_, _, err := newTestClient(srv.URL).Rate(context.Background(), target)
		assert.Error(t, err)
	})

	t.Run("unreachable service fails", func(t *testing.T) {
		_, _, err := newTestClient("http://127.0.0.1:1").Rate(context.Background(), target)
		assert.Error(t, err)
	})
}

func TestUploadResume(t *testing.T) {
	content := strings.NewReader("%PDF-1.4 fake resume")

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/upload_resume_for_rating", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, hdr, err := r.FormFile("resume")
			require.NoError(t, err)
			assert.Equal(t, "resume.pdf", hdr.Filename)
			_, _ = w.Write([]byte(`{"success": true, "resume_summary": "3y backend dev", "key_skills": ["Go"], "experience_years": 3}`))
		}))
		defer srv.Close()

		ru, err := newTestClient(srv.URL).UploadResume(context.Background(), "resume.pdf", 20, content)
		require.NoError(t, err)
		assert.Equal(t, "3y backend dev", ru.ResumeSummary)
		assert.Equal(t, []string{"Go"}, ru.KeySkills)
		assert.Equal(t, 3, ru.ExperienceYears)
	})

	t.Run("rejects unsupported extension", func(t *testing.T) {
		_, err := newTestClient("http://ignored").UploadResume(context.Background(), "resume.txt", 20, content)
		assert.Equal(t, ErrResumeFileType, err)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := newTestClient("http://ignored").UploadResume(context.Background(), "resume.docx", 2<<20, content)
		assert.Equal(t, ErrResumeTooLarge, err)
	})

	t.Run("success=false fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "message": "could not parse resume"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).UploadResume(context.Background(), "resume.pdf", 20, content)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not parse resume")
	})
}
