// Package scoringsvc talks to the external AI compatibility scoring service.
// The dynamic response shape is validated here and converted into the strict
// tagged form before anything internal consumes it.
package scoringsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/rating"
)

const (
	ratingPath = "/getRating"
	resumePath = "/upload_resume_for_rating"
)

// resume upload constraints, mirrored from the scoring service
var allowedResumeExts = map[string]bool{".pdf": true, ".docx": true}

var (
	// errors
	ErrResumeFileType = errors.New("unsupported file format; please upload a PDF or DOCX file")
	ErrResumeTooLarge = errors.New("resume file is too large")
)

type (
	Client struct {
		conf   core.ScoringConfig
		client *http.Client
	}

	// ratingResponse is the raw service response shape.
	ratingResponse struct {
		Success      bool     `json:"success"`
		Rating       *float64 `json:"rating"`
		MatchDetails string   `json:"match_details"`
		Message      string   `json:"message"`
	}

	// ResumeUpload is the service's answer to a resume upload. A successful
	// upload means subsequent scores are personalized.
	ResumeUpload struct {
		Success         bool     `json:"success"`
		Message         string   `json:"message"`
		ResumeSummary   string   `json:"resume_summary"`
		KeySkills       []string `json:"key_skills"`
		ExperienceYears int      `json:"experience_years"`
	}
)

var _ rating.Client = (*Client)(nil)

func NewClient(conf core.ScoringConfig) *Client {
	return &Client{
		conf: conf,
		// per-request timeout so one dead endpoint cannot wedge a fetch goroutine
		client: &http.Client{Timeout: conf.Timeout},
	}
}

// Rate requests a compatibility score for one entity. Any non-2xx status,
// malformed body or success=false counts as a fetch failure.
func (c *Client) Rate(ctx context.Context, target rating.Target) (float64, string, error) {
	body, err := json.Marshal(target.Payload)
	if err != nil {
		return 0, "", errors.Wrap(err, "marshalling rating request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.BaseURL+ratingPath, bytes.NewReader(body))
	if err != nil {
		return 0, "", errors.Wrap(err, "building rating request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, "", errors.Wrap(err, "requesting rating")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return 0, "", errors.Errorf("rating request: unexpected status %d", res.StatusCode)
	}

	var rr ratingResponse
	if err = json.NewDecoder(res.Body).Decode(&rr); err != nil {
		return 0, "", errors.Wrap(err, "decoding rating response")
	}
	if !rr.Success {
		return 0, "", errors.Errorf("rating request refused: %s", rr.Message)
	}
	if rr.Rating == nil {
		return 0, "", errors.New("rating response missing rating value")
	}
	return *rr.Rating, rr.MatchDetails, nil
}

// UploadResume forwards a resume file to the scoring service. File type and
// size are validated locally before anything is sent.
func (c *Client) UploadResume(ctx context.Context, filename string, size int64, file io.Reader) (ResumeUpload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedResumeExts[ext] {
		return ResumeUpload{}, ErrResumeFileType
	}
	if size > c.conf.MaxResumeSize {
		return ResumeUpload{}, ErrResumeTooLarge
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", filepath.Base(filename))
	if err != nil {
		return ResumeUpload{}, errors.Wrap(err, "building resume form")
	}
	if _, err = io.Copy(fw, io.LimitReader(file, c.conf.MaxResumeSize)); err != nil {
		return ResumeUpload{}, errors.Wrap(err, "reading resume file")
	}
	if err = mw.Close(); err != nil {
		return ResumeUpload{}, errors.Wrap(err, "closing resume form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.BaseURL+resumePath, &body)
	if err != nil {
		return ResumeUpload{}, errors.Wrap(err, "building resume request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.client.Do(req)
	if err != nil {
		return ResumeUpload{}, errors.Wrap(err, "uploading resume")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return ResumeUpload{}, errors.Errorf("resume upload: unexpected status %d", res.StatusCode)
	}

	var ru ResumeUpload
	if err = json.NewDecoder(res.Body).Decode(&ru); err != nil {
		return ResumeUpload{}, errors.Wrap(err, "decoding resume response")
	}
	if !ru.Success {
		return ResumeUpload{}, errors.Errorf("resume upload refused: %s", ru.Message)
	}
	return ru, nil
}
