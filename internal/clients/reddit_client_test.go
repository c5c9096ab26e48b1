package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/auralabs/aura/config"
	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

func listingJSON(ids ...string) string {
	children := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		children[i] = map[string]interface{}{
			"data": map[string]interface{}{
				"id":          id,
				"title":       "title " + id,
				"selftext":    "body " + id,
				"ups":         i,
				"url":         "https://reddit.com/" + id,
				"created_utc": 1700000000.0 + float64(i),
			},
		}
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"kind": "Listing",
		"data": map[string]interface{}{"children": children},
	})
	return string(payload)
}

func testClient(srv *httptest.Server) *RedditClient {
	return &RedditClient{
		Config:    &clientcredentials.Config{TokenURL: srv.URL + "/api/v1/access_token"},
		Client:    srv.Client(),
		APIURL:    srv.URL,
		UserAgent: "aura-test/1.0",
	}
}

func TestNewRedditClient_MissingCredentials(t *testing.T) {
	_, err := NewRedditClient(config.RedditCredentials{UserAgent: "ua"})

	var authErr *insight.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Error(), "REDDIT_CLIENT_ID")
	assert.Contains(t, authErr.Error(), "REDDIT_CLIENT_SECRET")
}

func TestFetchHotPosts_InvalidInputBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	rc := testClient(srv)

	cases := []struct {
		name      string
		community string
		limit     int
	}{
		{"empty community", "", 25},
		{"blank community", "   ", 25},
		{"zero limit", "apple", 0},
		{"negative limit", "apple", -5},
		{"limit above ceiling", "apple", MaxFetchLimit + 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rc.FetchHotPosts(context.Background(), tc.community, tc.limit)

			var invalidErr *insight.InvalidInputError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}

	assert.Equal(t, int64(0), hits.Load(), "validation failures must not reach the network")
}

func TestFetchHotPosts_DecodesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/apple/hot", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "aura-test/1.0", r.Header.Get("User-Agent"))
		fmt.Fprint(w, listingJSON("aaa", "bbb", "ccc"))
	}))
	defer srv.Close()

	rc := testClient(srv)
	records, err := rc.FetchHotPosts(context.Background(), "apple", 3)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, models.PostRecord{
		ID:        "aaa",
		Title:     "title aaa",
		Body:      "body aaa",
		Score:     0,
		URL:       "https://reddit.com/aaa",
		CreatedAt: 1700000000,
	}, records[0])
	assert.Equal(t, "bbb", records[1].ID, "source order preserved")
	assert.Equal(t, "ccc", records[2].ID)
}

func TestFetchHotPosts_DeduplicatesAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON("aaa", "aaa", "bbb", "ccc", "ddd"))
	}))
	defer srv.Close()

	rc := testClient(srv)
	records, err := rc.FetchHotPosts(context.Background(), "apple", 3)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "aaa", records[0].ID)
	assert.Equal(t, "bbb", records[1].ID)
	assert.Equal(t, "ccc", records[2].ID)
}

func TestFetchHotPosts_FewerThanLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON("aaa"))
	}))
	defer srv.Close()

	rc := testClient(srv)
	records, err := rc.FetchHotPosts(context.Background(), "smallsub", 25)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFetchHotPosts_EmptyCommunityListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON())
	}))
	defer srv.Close()

	rc := testClient(srv)
	records, err := rc.FetchHotPosts(context.Background(), "emptysub", 25)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchHotPosts_UnauthorizedAfterRefresh(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/r/apple/hot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rc := testClient(srv)
	_, err := rc.FetchHotPosts(context.Background(), "apple", 5)

	var authErr *insight.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestFetchHotPosts_ServerErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rc := testClient(srv)
	_, err := rc.FetchHotPosts(context.Background(), "apple", 5)

	var fetchErr *insight.FetchError
	require.ErrorAs(t, err, &fetchErr)

	var authErr *insight.AuthenticationError
	assert.False(t, errors.As(err, &authErr), "fetch failures must stay distinguishable from auth failures")
}
