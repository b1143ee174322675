package repos

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/kv"
	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

const DefaultFreshness = 24 * time.Hour

var tracer = otel.Tracer("portfolio/usecase/repos")

// CacheKey is the payload key for a username; the fetch time lives under
// CacheKey(username) + "_at" in Unix milliseconds.
func CacheKey(username string) string {
	return "gh_repos_" + username
}

func timestampKey(username string) string {
	return CacheKey(username) + "_at"
}

// LoadReposUseCase returns a user's repositories, served from the store while
// the entry is younger than the freshness window.
type LoadReposUseCase struct {
	lister    repository.Lister
	store     kv.Store
	freshness time.Duration
	now       func() time.Time
	logger    logger.Logger
}

type Option func(*LoadReposUseCase)

func WithFreshness(d time.Duration) Option {
	return func(uc *LoadReposUseCase) {
		if d > 0 {
			uc.freshness = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *LoadReposUseCase) { uc.now = now }
}

func NewLoadReposUseCase(lister repository.Lister, store kv.Store, log logger.Logger, opts ...Option) *LoadReposUseCase {
	uc := &LoadReposUseCase{
		lister:    lister,
		store:     store,
		freshness: DefaultFreshness,
		now:       time.Now,
		logger:    log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type LoadReposOutput struct {
	Repos     []repository.Summary
	FromCache bool
	FetchedAt time.Time
}

func (uc *LoadReposUseCase) Execute(ctx context.Context, username string) (*LoadReposOutput, error) {
	ctx, span := tracer.Start(ctx, "repos.load")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	if out, ok := uc.cached(ctx, username); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return out, nil
	}

	list, err := uc.lister.ListByUser(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewRemoteUnavailable("repository listing failed for "+username, err)
	}
	if list == nil {
		list = []repository.Summary{}
	}

	fetchedAt := uc.now()
	uc.save(ctx, username, list, fetchedAt)

	uc.logger.Info("Repositories fetched", zap.String("username", username), zap.Int("count", len(list)))
	return &LoadReposOutput{Repos: list, FetchedAt: fetchedAt}, nil
}

// cached reports a hit only for a fresh, parseable entry. Anything else,
// including a store error, is a miss.
func (uc *LoadReposUseCase) cached(ctx context.Context, username string) (*LoadReposOutput, bool) {
	payload, ok, err := uc.store.Get(ctx, CacheKey(username))
	if err != nil {
		uc.logger.Warn("Repository cache read failed", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	if !ok || payload == "" {
		return nil, false
	}

	raw, ok, err := uc.store.Get(ctx, timestampKey(username))
	if err != nil || !ok {
		return nil, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return nil, false
	}
	fetchedAt := time.UnixMilli(ms)
	if uc.now().Sub(fetchedAt) >= uc.freshness {
		return nil, false
	}

	var list []repository.Summary
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		uc.logger.Warn("Discarding unreadable repository cache entry", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	if list == nil {
		list = []repository.Summary{}
	}
	return &LoadReposOutput{Repos: list, FromCache: true, FetchedAt: fetchedAt}, true
}

func (uc *LoadReposUseCase) save(ctx context.Context, username string, list []repository.Summary, at time.Time) {
	payload, err := json.Marshal(list)
	if err != nil {
		uc.logger.Error("Failed to encode repository cache entry", err, zap.String("username", username))
		return
	}
	if err := uc.store.Set(ctx, CacheKey(username), string(payload)); err != nil {
		uc.logger.Warn("Repository cache write failed", zap.String("username", username), zap.Error(err))
		return
	}
	if err := uc.store.Set(ctx, timestampKey(username), strconv.FormatInt(at.UnixMilli(), 10)); err != nil {
		uc.logger.Warn("Repository cache timestamp write failed", zap.String("username", username), zap.Error(err))
	}
}

// InvalidateUseCase drops a user's cache entry so the next load refetches.
type InvalidateUseCase struct {
	store  kv.Store
	logger logger.Logger
}

func NewInvalidateUseCase(store kv.Store, log logger.Logger) *InvalidateUseCase {
	return &InvalidateUseCase{store: store, logger: log}
}

func (uc *InvalidateUseCase) Execute(ctx context.Context, username string) error {
	if username == "" {
		return apperror.NewInvalidInput("username is required", nil)
	}
	if err := uc.store.Remove(ctx, CacheKey(username)); err != nil {
		return apperror.NewInternal("failed to remove repository cache", err)
	}
	if err := uc.store.Remove(ctx, timestampKey(username)); err != nil {
		return apperror.NewInternal("failed to remove repository cache timestamp", err)
	}
	uc.logger.Info("Repository cache invalidated", zap.String("username", username))
	return nil
}
