// Package github proxies public repository lookups to the GitHub REST API so
// the frontend never needs its own credentials.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/observability"
)

const requestTimeout = 10 * time.Second

// Repo is the subset of the GitHub repository payload the frontend renders.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}

// Client fetches a user's most recent public repositories. Responses are
// cached so repeated profile views do not burn API quota.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: requestTimeout},
	}
}

// Repos returns up to five public repositories for the given username,
// ordered by creation date.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}

	var repos []Repo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := c.fetch(ctx, username)
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

func (c *Client) fetch(ctx context.Context, username string) ([]Repo, error) {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnect-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		middleware.Logger.ErrorContext(ctx, "github request failed", "username", username, "error", err)
		return nil, models.NewInternalError(err)
	}
	defer resp.Body.Close()

	// Any non-200 answer reads as "no profile" to the caller, matching the
	// frontend contract; only the metrics distinguish a real 404 from an
	// upstream failure.
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			observability.GithubProxyRequests.WithLabelValues("not_found").Inc()
		} else {
			observability.GithubProxyRequests.WithLabelValues("error").Inc()
			middleware.Logger.WarnContext(ctx, "github returned unexpected status",
				"username", username, "status", resp.StatusCode)
		}
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "No github profile found"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return nil, models.NewInternalError(err)
	}

	observability.GithubProxyRequests.WithLabelValues("ok").Inc()
	return repos, nil
}
