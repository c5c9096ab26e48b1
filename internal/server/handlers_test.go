package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

type fakeRunner struct {
	batch    *models.AnalysisBatch
	err      error
	gotCom   string
	gotLimit int
}

func (f *fakeRunner) Run(_ context.Context, community string, limit int) (*models.AnalysisBatch, error) {
	f.gotCom = community
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func get(t *testing.T, runner *fakeRunner, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	NewServer(runner).Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalysis_Success(t *testing.T) {
	runner := &fakeRunner{batch: &models.AnalysisBatch{
		Community: "apple",
		Posts: []models.AnalyzedPost{
			{
				PostRecord: models.PostRecord{ID: "a1", Title: "Keynote", URL: "https://reddit.com/a1", Score: 42},
				Sentiment:  models.SentimentResult{Label: models.SentimentPositive, Score: 0.91},
			},
		},
		Counts: models.SentimentCounts{Positive: 1},
	}}

	rec := get(t, runner, "/api/analysis?subreddit=apple&limit=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apple", runner.gotCom)
	assert.Equal(t, 10, runner.gotLimit)

	var response analysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "apple", response.Subreddit)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, 1, response.Counts.Positive)
	require.Len(t, response.Posts, 1)
	assert.Equal(t, "Keynote", response.Posts[0].Title)
	assert.Equal(t, models.SentimentPositive, response.Posts[0].Label)
	assert.Equal(t, 0.91, response.Posts[0].SentimentScore)
}

func TestHandleAnalysis_DefaultLimit(t *testing.T) {
	runner := &fakeRunner{batch: &models.AnalysisBatch{Community: "apple"}}

	rec := get(t, runner, "/api/analysis?subreddit=apple")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultPostLimit, runner.gotLimit)
}

func TestHandleAnalysis_NonIntegerLimit(t *testing.T) {
	rec := get(t, &fakeRunner{}, "/api/analysis?subreddit=apple&limit=ten")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalysis_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", &insight.InvalidInputError{Param: "limit", Reason: "out of range"}, http.StatusBadRequest},
		{"authentication", &insight.AuthenticationError{Reason: "bad credentials"}, http.StatusUnauthorized},
		{"fetch", &insight.FetchError{Err: errors.New("down")}, http.StatusBadGateway},
		{"model init", &insight.ModelInitError{Err: errors.New("no artifact")}, http.StatusInternalServerError},
		{"classification", &insight.ClassificationError{Err: errors.New("mid-batch")}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, &fakeRunner{err: tc.err}, "/api/analysis?subreddit=apple")

			assert.Equal(t, tc.wantStatus, rec.Code)

			var response errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestHandleAnalysis_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analysis?subreddit=apple", nil)
	rec := httptest.NewRecorder()
	NewServer(&fakeRunner{}).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealthz(t *testing.T) {
	rec := get(t, &fakeRunner{}, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleDashboard(t *testing.T) {
	rec := get(t, &fakeRunner{}, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
