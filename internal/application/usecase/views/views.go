package views

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/application/service"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

const DateLayout = "2006-01-02"

// Counter keeps a page view tally per UTC day.
type Counter interface {
	Increment(ctx context.Context, at time.Time) (int64, error)
	Count(ctx context.Context, day time.Time) (int64, error)
}

type RecordViewUseCase struct {
	counter Counter
	logger  logger.Logger
}

func NewRecordViewUseCase(counter Counter, log logger.Logger) *RecordViewUseCase {
	return &RecordViewUseCase{counter: counter, logger: log}
}

// Execute decodes a page.viewed payload and bumps that day's counter.
// Malformed payloads return ErrInvalidInput so the caller can skip them.
func (uc *RecordViewUseCase) Execute(ctx context.Context, payload []byte) error {
	var e service.PageViewedEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return apperror.NewInvalidInput("malformed page view event", err)
	}
	if e.EventType != service.EventTypePageViewed {
		return apperror.NewInvalidInput("unexpected event type "+e.EventType, nil)
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	n, err := uc.counter.Increment(ctx, e.At)
	if err != nil {
		return apperror.NewInternal("failed to increment view counter", err)
	}
	uc.logger.Debug("Page view recorded", zap.String("day", e.At.UTC().Format(DateLayout)), zap.Int64("total", n))
	return nil
}

type CountViewsInput struct {
	// Date is YYYY-MM-DD. Empty means today (UTC).
	Date string
}

type CountViewsOutput struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

type CountViewsUseCase struct {
	counter Counter
	now     func() time.Time
}

func NewCountViewsUseCase(counter Counter) *CountViewsUseCase {
	return &CountViewsUseCase{counter: counter, now: time.Now}
}

func (uc *CountViewsUseCase) Execute(ctx context.Context, input CountViewsInput) (*CountViewsOutput, error) {
	day := uc.now().UTC()
	if input.Date != "" {
		parsed, err := time.Parse(DateLayout, input.Date)
		if err != nil {
			return nil, apperror.NewInvalidInput("date must be YYYY-MM-DD", err)
		}
		day = parsed
	}

	n, err := uc.counter.Count(ctx, day)
	if err != nil {
		return nil, apperror.NewInternal("failed to read view counter", err)
	}
	return &CountViewsOutput{Date: day.Format(DateLayout), Views: n}, nil
}
