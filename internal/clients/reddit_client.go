package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/auralabs/aura/config"
	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"

	// MaxFetchLimit is the ceiling on posts per fetch; it matches the page
	// size the Reddit listing endpoint serves.
	MaxFetchLimit = 100
)

// RedditClient fetches trending posts for a subreddit over the OAuth2
// client-credentials flow. Construct it once and reuse it across runs; it is
// safe for concurrent fetches.
type RedditClient struct {
	Config    *clientcredentials.Config
	Client    *http.Client
	APIURL    string
	UserAgent string
	mu        sync.Mutex
}

// NewRedditClient fails with an AuthenticationError before any network call
// when required credentials are unset.
func NewRedditClient(creds config.RedditCredentials) (*RedditClient, error) {
	if missing := creds.Missing(); len(missing) > 0 {
		return nil, &insight.AuthenticationError{
			Reason: "missing Reddit credentials: " + strings.Join(missing, ", "),
		}
	}

	oauthConf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     REDDIT_AUTH_URL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return &RedditClient{
		Config:    oauthConf,
		Client:    oauthConf.Client(context.Background()),
		APIURL:    REDDIT_API_URL,
		UserAgent: creds.UserAgent,
	}, nil
}

// RefreshClient rebuilds the underlying HTTP client, dropping a stale token.
func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// FetchHotPosts retrieves up to limit of the subreddit's currently hot posts
// in the order Reddit ranks them. Limits outside [1, MaxFetchLimit] are
// rejected, not clamped.
func (rc *RedditClient) FetchHotPosts(ctx context.Context, community string, limit int) ([]models.PostRecord, error) {
	if strings.TrimSpace(community) == "" {
		return nil, &insight.InvalidInputError{Param: "community", Reason: "must not be empty"}
	}
	if limit < 1 || limit > MaxFetchLimit {
		return nil, &insight.InvalidInputError{
			Param:  "limit",
			Reason: fmt.Sprintf("must be between 1 and %d, got %d", MaxFetchLimit, limit),
		}
	}

	return rc.fetchHot(ctx, community, limit, false)
}

func (rc *RedditClient) fetchHot(ctx context.Context, community string, limit int, refreshed bool) ([]models.PostRecord, error) {
	parsedUrl, err := url.Parse(fmt.Sprintf("%s/r/%s/hot", rc.APIURL, url.PathEscape(community)))
	if err != nil {
		return nil, &insight.FetchError{Err: fmt.Errorf("failed to parse URL: %w", err)}
	}
	queryParams := parsedUrl.Query()
	queryParams.Add("limit", strconv.Itoa(limit))
	queryParams.Add("raw_json", "1")
	parsedUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return nil, &insight.FetchError{Err: err}
	}
	req.Header.Set("User-Agent", rc.UserAgent)

	resp, err := rc.Client.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &insight.AuthenticationError{Reason: "Reddit rejected the credentials", Err: err}
		}
		return nil, &insight.FetchError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeListing(resp.Body, limit)
	case http.StatusUnauthorized, http.StatusForbidden:
		if !refreshed {
			slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
			rc.RefreshClient()
			return rc.fetchHot(ctx, community, limit, true)
		}
		return nil, &insight.AuthenticationError{
			Reason: fmt.Sprintf("Reddit rejected the request with status %d", resp.StatusCode),
		}
	case http.StatusTooManyRequests:
		slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff")
		return rc.retryWithBackoff(ctx, community, limit)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, &insight.FetchError{
			Err: fmt.Errorf("reddit returned status %d: %s", resp.StatusCode, string(body)),
		}
	}
}

func (rc *RedditClient) retryWithBackoff(ctx context.Context, community string, limit int) ([]models.PostRecord, error) {
	backoff := INITIAL_BACKOFF
	for i := 1; i < MAX_RETRIES; i++ {
		slog.Warn("[RedditClient] Retrying request",
			slog.Int("attempt", i), slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, &insight.FetchError{Err: ctx.Err()}
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}

		records, err := rc.fetchHot(ctx, community, limit, false)
		if err == nil {
			return records, nil
		}
	}
	return nil, &insight.FetchError{Err: errors.New("max retries reached, request failed")}
}

// decodeListing flattens a Reddit listing into PostRecords, preserving the
// source order, dropping duplicate ids, and capping the result at limit.
func decodeListing(body io.Reader, limit int) ([]models.PostRecord, error) {
	var listing models.RedditAPIResponse
	if err := json.NewDecoder(body).Decode(&listing); err != nil {
		return nil, &insight.FetchError{Err: fmt.Errorf("failed to decode listing: %w", err)}
	}

	records := make([]models.PostRecord, 0, len(listing.Data.Children))
	seen := make(map[string]struct{}, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if _, dup := seen[child.Data.ID]; dup {
			continue
		}
		seen[child.Data.ID] = struct{}{}
		records = append(records, child.Data.ToPostRecord())
		if len(records) == limit {
			break
		}
	}

	slog.Info("[RedditClient] Fetched posts", slog.Int("count", len(records)))
	return records, nil
}
