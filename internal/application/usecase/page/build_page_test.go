package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/application/usecase/theme"
	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

type stubStore map[string]string

func (s stubStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}
func (s stubStore) Set(ctx context.Context, key, value string) error { s[key] = value; return nil }
func (s stubStore) Remove(ctx context.Context, key string) error     { delete(s, key); return nil }

type stubSource struct {
	p   *profile.Profile
	err error
}

func (s stubSource) Fetch(ctx context.Context) (*profile.Profile, error) { return s.p, s.err }

type stubLister struct {
	list  []repository.Summary
	err   error
	calls int
}

func (s *stubLister) ListByUser(ctx context.Context, username string) ([]repository.Summary, error) {
	s.calls++
	return s.list, s.err
}

func newBuild(src profile.Source, lister repository.Lister, cache stubStore) *BuildPageUseCase {
	return newBuildWithLogger(src, lister, cache, logger.NewNopLogger())
}

func newBuildWithLogger(src profile.Source, lister repository.Lister, cache stubStore, log logger.Logger) *BuildPageUseCase {
	uc := NewBuildPageUseCase(
		theme.NewController(log),
		profileUC.NewLoadProfileUseCase(nil, src, log),
		repos.NewLoadReposUseCase(lister, cache, log),
		testMail,
		"github.com",
		log,
	)
	uc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestBuildPageComplete(t *testing.T) {
	lister := &stubLister{list: []repository.Summary{{Name: "folio", Stars: 1}}}
	themeStore := stubStore{}
	uc := newBuild(stubSource{p: sampleProfile()}, lister, stubStore{})

	out := uc.Execute(context.Background(), BuildPageInput{ThemeStore: themeStore, SystemTheme: "light"})

	assert.Equal(t, page.OutcomeComplete, out.Page.Outcome)
	assert.Equal(t, "light", out.Page.Theme)
	assert.Equal(t, "Light", out.Page.Slots[page.SlotThemeLabel].Value)
	assert.Equal(t, "light", themeStore[theme.StorageKey])
	assert.Equal(t, "rediet", out.Username)
	assert.Equal(t, HintReposAutoLoaded, out.Page.Slots[page.SlotRepoHint].Value)
	assert.Contains(t, out.Page.Slots[page.SlotRepos].Value, "folio")
	assert.Equal(t, "© 2025 Rediet <R>", out.Page.Slots[page.SlotCopyright].Value)
}

func TestBuildPageProfileUnavailable(t *testing.T) {
	lister := &stubLister{}
	uc := newBuild(stubSource{err: errors.New("404")}, lister, stubStore{})

	out := uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})

	assert.Equal(t, page.OutcomeDataUnavailable, out.Page.Outcome)
	assert.Equal(t, HintProfileFailed, out.Page.Slots[page.SlotRepoHint].Value)
	assert.NotContains(t, out.Page.Slots, page.SlotRepos)
	assert.NotContains(t, out.Page.Slots, page.SlotNameTop)
	assert.Equal(t, "dark", out.Page.Theme)
	assert.Zero(t, lister.calls)
}

func TestBuildPageNoUsername(t *testing.T) {
	p := sampleProfile()
	p.Links.GitHub = "https://gitlab.com/rediet"
	lister := &stubLister{}
	uc := newBuild(stubSource{p: p}, lister, stubStore{})

	out := uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})

	assert.Equal(t, page.OutcomeUsernameNotFound, out.Page.Outcome)
	assert.Equal(t, HintNoUsername, out.Page.Slots[page.SlotRepoHint].Value)
	assert.NotContains(t, out.Page.Slots, page.SlotRepos)
	assert.Contains(t, out.Page.Slots, page.SlotNameTop)
	assert.Zero(t, lister.calls)
}

func TestBuildPageNoUsernameLogsKind(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := sampleProfile()
	p.Links.GitHub = "https://gitlab.com/rediet"
	uc := newBuildWithLogger(stubSource{p: p}, &stubLister{}, stubStore{}, logger.FromZap(zap.New(core)))

	uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})

	entries := logs.FilterMessage("No code hosting username in profile").All()
	require.Len(t, entries, 1)
	err, ok := entries[0].ContextMap()["error"]
	require.True(t, ok)
	assert.Contains(t, err, apperror.ErrUsernameNotFound.Error())
	assert.Contains(t, err, "https://gitlab.com/rediet")
}

func TestBuildPageRemoteUnavailable(t *testing.T) {
	lister := &stubLister{err: errors.New("403")}
	uc := newBuild(stubSource{p: sampleProfile()}, lister, stubStore{})

	out := uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})

	assert.Equal(t, page.OutcomeRemoteUnavailable, out.Page.Outcome)
	assert.Equal(t, HintRemoteFailed, out.Page.Slots[page.SlotRepoHint].Value)
	assert.Contains(t, out.Page.Slots[page.SlotRepos].Value, `href="https://github.com/rediet"`)
}

func TestBuildPageUsesRepositoryCache(t *testing.T) {
	lister := &stubLister{list: []repository.Summary{{Name: "folio"}}}
	cache := stubStore{}
	uc := newBuild(stubSource{p: sampleProfile()}, lister, cache)

	uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})
	uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{}})

	assert.Equal(t, 1, lister.calls)
	assert.Contains(t, cache, repos.CacheKey("rediet"))
}

func TestBuildPageStoredThemeWins(t *testing.T) {
	uc := newBuild(stubSource{p: sampleProfile()}, &stubLister{}, stubStore{})

	out := uc.Execute(context.Background(), BuildPageInput{ThemeStore: stubStore{"theme": "dark"}, SystemTheme: "light"})
	assert.Equal(t, "dark", out.Page.Theme)
}
