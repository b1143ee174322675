package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rediet/portfolio/internal/domain/kv"
)

const cookieMaxAge = 365 * 24 * 60 * 60

// cookieStore keeps per-visitor preferences in response cookies. Writes are
// visible to later reads within the same request.
type cookieStore struct {
	c       *gin.Context
	secure  bool
	pending map[string]*string
}

func NewCookieStore(c *gin.Context, secure bool) kv.Store {
	return &cookieStore{c: c, secure: secure, pending: map[string]*string{}}
}

func (s *cookieStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}
	v, err := s.c.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	return v, true, nil
}

func (s *cookieStore) Set(ctx context.Context, key, value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, cookieMaxAge, "/", "", s.secure, true)
	s.pending[key] = &value
	return nil
}

func (s *cookieStore) Remove(ctx context.Context, key string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", "", s.secure, true)
	s.pending[key] = nil
	return nil
}
