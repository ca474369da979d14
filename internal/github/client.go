// Package github provides a minimal client for the GitHub repository
// listing used by the public profile page.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// Repo is the subset of the GitHub repository payload the client renders.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client fetches a user's most recent public repositories.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a GitHub client. The token is optional; without it the
// client uses GitHub's unauthenticated rate limits.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// NewClientWithBaseURL creates a client pointed at a non-default API root.
// Used by tests with httptest servers.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// ListRepos returns the user's five most recently created repositories.
// Results are cached briefly; any upstream failure, including a non-200
// status, is reported as not-found per the profile page contract. No
// retries.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubReposKey(username), &repos, cache.GithubRepoTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnect")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.UpstreamRequests.WithLabelValues("github", "error").Inc()
		return nil, models.NewNotFoundError("No github profile found")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		middleware.UpstreamRequests.WithLabelValues("github", "not_found").Inc()
		return nil, models.NewNotFoundError("No github profile found")
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		middleware.UpstreamRequests.WithLabelValues("github", "error").Inc()
		return nil, models.NewNotFoundError("No github profile found")
	}

	middleware.UpstreamRequests.WithLabelValues("github", "ok").Inc()
	return repos, nil
}
