package repos

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

type mapStore struct {
	data   map[string]string
	getErr error
}

func newMapStore() *mapStore { return &mapStore{data: map[string]string{}} }

func (s *mapStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *mapStore) Set(ctx context.Context, key, value string) error {
	s.data[key] = value
	return nil
}

func (s *mapStore) Remove(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type fakeLister struct {
	result []repository.Summary
	err    error
	calls  int
	users  []string
}

func (f *fakeLister) ListByUser(ctx context.Context, username string) ([]repository.Summary, error) {
	f.calls++
	f.users = append(f.users, username)
	return f.result, f.err
}

type LoadReposTestSuite struct {
	suite.Suite
	store  *mapStore
	lister *fakeLister
	now    time.Time
	uc     *LoadReposUseCase
}

func (s *LoadReposTestSuite) SetupTest() {
	s.store = newMapStore()
	s.lister = &fakeLister{result: []repository.Summary{
		{Name: "folio", Stars: 3, UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.uc = NewLoadReposUseCase(s.lister, s.store, logger.NewNopLogger(), WithClock(func() time.Time { return s.now }))
}

func TestLoadReposSuite(t *testing.T) {
	suite.Run(t, new(LoadReposTestSuite))
}

func (s *LoadReposTestSuite) TestFetchPopulatesCache() {
	out, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.False(out.FromCache)
	s.Equal(1, s.lister.calls)
	s.Equal([]string{"alice"}, s.lister.users)
	s.Contains(s.store.data, "gh_repos_alice")
	s.Equal(strconv.FormatInt(s.now.UnixMilli(), 10), s.store.data["gh_repos_alice_at"])
}

func (s *LoadReposTestSuite) TestSecondCallWithinWindowUsesCache() {
	first, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.now = s.now.Add(23 * time.Hour)
	second, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.True(second.FromCache)
	s.Equal(1, s.lister.calls)
	s.Equal(first.Repos, second.Repos)
}

func (s *LoadReposTestSuite) TestStaleEntryIsOverwritten() {
	_, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.now = s.now.Add(24 * time.Hour)
	s.lister.result = []repository.Summary{{Name: "renamed", Stars: 10}}

	out, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.False(out.FromCache)
	s.Equal(2, s.lister.calls)
	s.Equal("renamed", out.Repos[0].Name)

	s.now = s.now.Add(time.Minute)
	cached, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)
	s.True(cached.FromCache)
	s.Equal("renamed", cached.Repos[0].Name)
}

func (s *LoadReposTestSuite) TestFailureIsNotCached() {
	s.lister.err = errors.New("403 rate limited")

	_, err := s.uc.Execute(context.Background(), "alice")
	s.ErrorIs(err, apperror.ErrRemoteUnavailable)
	s.NotContains(s.store.data, "gh_repos_alice")

	s.lister.err = nil
	out, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)
	s.False(out.FromCache)
	s.Equal(2, s.lister.calls)
}

func (s *LoadReposTestSuite) TestCorruptEntryIsAMiss() {
	s.store.data["gh_repos_alice"] = "{not json"
	s.store.data["gh_repos_alice_at"] = strconv.FormatInt(s.now.UnixMilli(), 10)

	out, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)

	s.False(out.FromCache)
	s.Equal(1, s.lister.calls)
	s.Equal("folio", out.Repos[0].Name)
}

func (s *LoadReposTestSuite) TestMissingTimestampIsAMiss() {
	s.store.data["gh_repos_alice"] = "[]"

	_, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)
	s.Equal(1, s.lister.calls)
}

func (s *LoadReposTestSuite) TestStoreReadErrorFallsBackToNetwork() {
	s.store.getErr = errors.New("redis: connection refused")

	out, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)
	s.False(out.FromCache)
	s.Equal(1, s.lister.calls)
}

func (s *LoadReposTestSuite) TestUsersAreCachedSeparately() {
	_, err := s.uc.Execute(context.Background(), "alice")
	s.Require().NoError(err)
	_, err = s.uc.Execute(context.Background(), "bob")
	s.Require().NoError(err)

	s.Equal(2, s.lister.calls)
	s.Contains(s.store.data, "gh_repos_bob")
}

func TestWithFreshness(t *testing.T) {
	store := newMapStore()
	lister := &fakeLister{result: []repository.Summary{}}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := NewLoadReposUseCase(lister, store, logger.NewNopLogger(),
		WithFreshness(time.Hour),
		WithClock(func() time.Time { return now }),
	)

	_, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)

	now = now.Add(61 * time.Minute)
	out, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)

	assert.False(t, out.FromCache)
	assert.Equal(t, 2, lister.calls)
	assert.NotNil(t, out.Repos)
}

func TestInvalidate(t *testing.T) {
	store := newMapStore()
	store.data["gh_repos_alice"] = "[]"
	store.data["gh_repos_alice_at"] = "1"
	store.data["theme"] = "light"

	uc := NewInvalidateUseCase(store, logger.NewNopLogger())
	require.NoError(t, uc.Execute(context.Background(), "alice"))

	assert.Equal(t, map[string]string{"theme": "light"}, store.data)
	assert.ErrorIs(t, uc.Execute(context.Background(), ""), apperror.ErrInvalidInput)
}
