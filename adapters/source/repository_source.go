package source

import (
	"context"
	"errors"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
)

// RepositorySource serves one stored profile document.
type RepositorySource struct {
	repo profile.Repository
	slug string
}

func NewRepositorySource(repo profile.Repository, slug string) *RepositorySource {
	return &RepositorySource{repo: repo, slug: slug}
}

func (s *RepositorySource) Fetch(ctx context.Context) (*profile.Profile, error) {
	doc, err := s.repo.GetBySlug(ctx, s.slug)
	if err != nil {
		if errors.Is(err, apperror.ErrDataUnavailable) {
			return nil, err
		}
		return nil, apperror.NewDataUnavailable("stored profile '"+s.slug+"' unavailable", err)
	}
	if doc == nil || doc.Profile == nil {
		return nil, apperror.NewDataUnavailable("stored profile '"+s.slug+"' is empty", nil)
	}
	return doc.Profile, nil
}
