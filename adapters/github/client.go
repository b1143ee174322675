package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/pkg/logger"
)

const (
	DefaultAPIBase = "https://api.github.com"
	perPage        = 100
	userAgent      = "portfolio-renderer"
)

var tracer = otel.Tracer("portfolio/adapters/github")

// StatusError is returned for any non-2xx listing response.
type StatusError struct {
	StatusCode int
	Username   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API error: %d (user %s)", e.StatusCode, e.Username)
}

// Client lists public repositories through the unauthenticated REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logger: log}
}

var _ repository.Lister = (*Client)(nil)

func (c *Client) ListByUser(ctx context.Context, username string) ([]repository.Summary, error) {
	ctx, span := tracer.Start(ctx, "github.list_repos")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("sort", "updated")
	endpoint := c.baseURL + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build GitHub request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("GitHub request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Warn("GitHub listing rejected",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode),
			zap.String("ratelimit_remaining", resp.Header.Get("X-RateLimit-Remaining")),
		)
		return nil, &StatusError{StatusCode: resp.StatusCode, Username: username}
	}

	var list []repository.Summary
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode GitHub response: %w", err)
	}
	if list == nil {
		list = []repository.Summary{}
	}
	return list, nil
}
