package source

import (
	"context"
	"os"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
)

// FileSource reads the profile document from disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) (*profile.Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperror.NewDataUnavailable("cannot read profile file "+s.path, err)
	}
	p, err := profile.Parse(data)
	if err != nil {
		return nil, apperror.NewDataUnavailable("profile file is not valid JSON", err)
	}
	return p, nil
}

// LoadEmbedded reads the embedded override once at startup. An empty path
// means no override.
func LoadEmbedded(ctx context.Context, path string) (*profile.Profile, error) {
	if path == "" {
		return nil, nil
	}
	return NewFileSource(path).Fetch(ctx)
}
