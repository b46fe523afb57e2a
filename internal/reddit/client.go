// Package reddit is a minimal wire client for the Reddit OAuth API.
//
// It authenticates with the application-only (client credentials) flow and
// shapes raw listing responses into model records. Callers get an error when
// a call fails; the CLI decides how to degrade.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/reddit-digest/internal/model"
)

const (
	defaultAPIBase  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
)

// Credentials identify a Reddit script application.
type Credentials struct {
	ID        string
	Secret    string
	UserAgent string
}

// Client fetches posts and comments from Reddit.
type Client struct {
	logger   *slog.Logger
	http     *http.Client
	creds    Credentials
	apiBase  string
	tokenURL string

	token       string
	tokenExpiry time.Time
}

// New creates a Client for the public Reddit API.
func New(logger *slog.Logger, creds Credentials) *Client {
	return &Client{
		logger:   logger,
		http:     &http.Client{Timeout: 30 * time.Second},
		creds:    creds,
		apiBase:  defaultAPIBase,
		tokenURL: defaultTokenURL,
	}
}

// FetchSubreddit returns up to limit posts from a subreddit. Unrecognized
// sort values fall back to "hot".
func (c *Client) FetchSubreddit(ctx context.Context, name string, limit int, sort string) ([]model.Post, error) {
	if !model.ValidSorts[sort] {
		sort = "hot"
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	listing, err := c.getListing(ctx, fmt.Sprintf("/r/%s/%s", name, sort), q)
	if err != nil {
		return nil, fmt.Errorf("fetch r/%s: %w", name, err)
	}
	return listing.posts(limit), nil
}

// Search returns up to limit posts matching query, scoped to a subreddit
// when one is given and site-wide otherwise.
func (c *Client) Search(ctx context.Context, query, subreddit string, limit int) ([]model.Post, error) {
	q := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}
	path := "/search"
	if subreddit != "" {
		path = fmt.Sprintf("/r/%s/search", subreddit)
		q.Set("restrict_sr", "1")
	}
	listing, err := c.getListing(ctx, path, q)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return listing.posts(limit), nil
}

// FetchComments returns up to limit comments for a post, flattening the
// reply tree depth-first. Collapsed "more" stubs and anything without a body
// are skipped.
func (c *Client) FetchComments(ctx context.Context, postID string, limit int) ([]model.Comment, error) {
	body, err := c.get(ctx, "/comments/"+postID, url.Values{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", postID, err)
	}

	// The endpoint returns a two-element array: the post listing, then the
	// comment tree.
	var pair []json.RawMessage
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", postID, err)
	}
	if len(pair) < 2 {
		return nil, fmt.Errorf("fetch comments for %s: unexpected response shape", postID)
	}

	var tree commentListing
	if err := json.Unmarshal(pair[1], &tree); err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", postID, err)
	}

	comments := flattenComments(tree.Data.Children, nil)
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

func (c *Client) getListing(ctx context.Context, path string, q url.Values) (*listing, error) {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	token, err := c.authToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiBase+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reddit returned status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// authToken returns a cached application-only token, requesting a fresh one
// when the cached token is absent or near expiry.
func (c *Client) authToken(ctx context.Context) (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.creds.ID, c.creds.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned status %d: %s", resp.StatusCode, string(b))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access_token")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}
