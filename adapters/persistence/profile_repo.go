package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetBySlug(ctx context.Context, slug string) (*profile.Document, error) {
	query, args, err := psql.
		Select("slug", "document", "updated_at").
		From("profiles").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	doc := &profile.Document{}
	var raw []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&doc.Slug, &raw, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", slug)
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	p, err := profile.Parse(raw)
	if err != nil {
		r.logger.Warn("Stored profile document is unreadable", zap.String("slug", slug), zap.Error(err))
		return nil, apperror.NewDataUnavailable("stored profile document is unreadable", err)
	}
	doc.Profile = p
	return doc, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, doc *profile.Document) error {
	raw, err := json.Marshal(doc.Profile)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile document", err)
	}

	query, args, err := psql.
		Insert("profiles").
		Columns("slug", "document", "updated_at").
		Values(doc.Slug, raw, doc.UpdatedAt).
		Suffix("ON CONFLICT (slug) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
