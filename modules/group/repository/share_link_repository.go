package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"terminfinder-api/core/database"
	"terminfinder-api/core/logger"
	"terminfinder-api/modules/group/entity"
)

type ShareLinkRepositoryInterface interface {
	Create(ctx context.Context, link *entity.ShareLink) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entity.ShareLink, error)
	MarkUsed(ctx context.Context, tokenHash string, now time.Time) (bool, error)
}

type ShareLinkRepository struct {
	DB database.Database
}

func NewShareLinkRepository(db database.Database) ShareLinkRepositoryInterface {
	return &ShareLinkRepository{DB: db}
}

func (r *ShareLinkRepository) Create(ctx context.Context, link *entity.ShareLink) error {
	query := r.DB.Rebind(`
		INSERT INTO share_links (id, group_code, token_hash, expires_at, single_use, used_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?)
	`)
	err := r.DB.ExecContext(ctx, query,
		link.ID,
		link.GroupCode,
		link.TokenHash,
		link.ExpiresAt,
		link.SingleUse,
		link.CreatedAt,
		link.UpdatedAt,
	)
	if err != nil {
		logger.Error("ShareLinkRepository:Create", "group_code", link.GroupCode, "error", err)
		return err
	}
	return nil
}

// GetByTokenHash returns nil, nil for an unknown token.
func (r *ShareLinkRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*entity.ShareLink, error) {
	var link entity.ShareLink
	query := r.DB.Rebind(`
		SELECT id, group_code, token_hash, expires_at, single_use, used_at, created_at, updated_at
		FROM share_links
		WHERE token_hash = ?
	`)
	err := r.DB.GetContext(ctx, &link, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ShareLinkRepository:GetByTokenHash", err)
		return nil, err
	}
	return &link, nil
}

// MarkUsed consumes an active single-use link in one conditional update.
// It returns false when another request consumed it first or it expired.
func (r *ShareLinkRepository) MarkUsed(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	query := r.DB.Rebind(`
		UPDATE share_links
		SET used_at = ?, updated_at = ?
		WHERE token_hash = ?
			AND single_use = ?
			AND used_at IS NULL
			AND (expires_at IS NULL OR expires_at >= ?)
	`)
	result, err := r.DB.SQLx().ExecContext(ctx, query, now, now, tokenHash, true, now)
	if err != nil {
		logger.Error("ShareLinkRepository:MarkUsed", err)
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("ShareLinkRepository:MarkUsed - RowsAffected", err)
		return false, err
	}
	return rowsAffected == 1, nil
}
