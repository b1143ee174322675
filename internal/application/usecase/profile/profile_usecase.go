package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

var tracer = otel.Tracer("portfolio/usecase/profile")

// LoadProfileUseCase prefers an embedded profile and falls back to a Source.
type LoadProfileUseCase struct {
	embedded *profile.Profile
	source   profile.Source
	logger   logger.Logger
}

// NewLoadProfileUseCase accepts a nil embedded profile or a nil source. With
// both nil, Execute reports ErrDataUnavailable.
func NewLoadProfileUseCase(embedded *profile.Profile, source profile.Source, log logger.Logger) *LoadProfileUseCase {
	return &LoadProfileUseCase{embedded: embedded, source: source, logger: log}
}

type LoadProfileOutput struct {
	Profile  *profile.Profile
	Embedded bool
}

func (uc *LoadProfileUseCase) Execute(ctx context.Context) (*LoadProfileOutput, error) {
	if uc.embedded != nil {
		return &LoadProfileOutput{Profile: uc.embedded, Embedded: true}, nil
	}
	if uc.source == nil {
		return nil, apperror.NewDataUnavailable("no profile source configured", nil)
	}

	ctx, span := tracer.Start(ctx, "profile.fetch")
	defer span.End()

	p, err := uc.source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Profile fetch failed", zap.Error(err))
		if errors.Is(err, apperror.ErrDataUnavailable) {
			return nil, err
		}
		return nil, apperror.NewDataUnavailable("profile source failed", err)
	}
	if p == nil {
		return nil, apperror.NewDataUnavailable("profile source returned nothing", nil)
	}
	return &LoadProfileOutput{Profile: p}, nil
}

// SaveProfileUseCase stores a profile document for storage-backed sources.
type SaveProfileUseCase struct {
	repo   profile.Repository
	logger logger.Logger
}

func NewSaveProfileUseCase(repo profile.Repository, log logger.Logger) *SaveProfileUseCase {
	return &SaveProfileUseCase{repo: repo, logger: log}
}

type SaveProfileInput struct {
	Slug    string
	Profile *profile.Profile
}

type SaveProfileOutput struct {
	Document *profile.Document
}

func (uc *SaveProfileUseCase) Execute(ctx context.Context, input SaveProfileInput) (*SaveProfileOutput, error) {
	if input.Slug == "" {
		return nil, apperror.NewInvalidInput("profile slug is required", nil)
	}
	if input.Profile == nil {
		return nil, apperror.NewInvalidInput("profile document is required", nil)
	}

	doc := &profile.Document{
		Slug:      input.Slug,
		Profile:   input.Profile,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("save profile failed: %w", err)
	}

	uc.logger.Info("Profile document saved", zap.String("slug", doc.Slug))
	return &SaveProfileOutput{Document: doc}, nil
}
