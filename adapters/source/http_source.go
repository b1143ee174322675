package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

// Profiles larger than this are rejected as unparsable.
const maxProfileBytes = 2 << 20

type HTTPSource struct {
	url    string
	client *http.Client
	logger logger.Logger
}

// NewHTTPSource fetches the profile document from url on every call. A nil
// client means http.DefaultClient; the request context bounds the call.
func NewHTTPSource(url string, client *http.Client, log logger.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client, logger: log}
}

func (s *HTTPSource) Fetch(ctx context.Context) (*profile.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, apperror.NewDataUnavailable("invalid profile url", err)
	}
	// Always revalidate with the origin.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperror.NewDataUnavailable("profile request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, apperror.NewDataUnavailable(fmt.Sprintf("profile request returned %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBytes+1))
	if err != nil {
		return nil, apperror.NewDataUnavailable("reading profile body failed", err)
	}
	if len(body) > maxProfileBytes {
		return nil, apperror.NewDataUnavailable("profile document too large", nil)
	}

	p, err := profile.Parse(body)
	if err != nil {
		return nil, apperror.NewDataUnavailable("profile body is not valid JSON", err)
	}

	s.logger.Debug("Profile fetched", zap.String("url", s.url), zap.Int("bytes", len(body)))
	return p, nil
}
