package repository

import (
	"context"
	"database/sql"
	"errors"

	"terminfinder-api/core/database"
	"terminfinder-api/core/logger"
	"terminfinder-api/modules/group/entity"
)

type GroupRepositoryInterface interface {
	GetByCode(ctx context.Context, code string) (*entity.Group, error)
	Create(ctx context.Context, group *entity.Group) error
}

type GroupRepository struct {
	DB database.Database
}

func NewGroupRepository(db database.Database) GroupRepositoryInterface {
	return &GroupRepository{DB: db}
}

// GetByCode returns nil, nil when the group does not exist.
func (r *GroupRepository) GetByCode(ctx context.Context, code string) (*entity.Group, error) {
	var group entity.Group
	query := r.DB.Rebind(`
		SELECT code, password_hash, created_at, updated_at
		FROM schedule_groups
		WHERE code = ?
	`)
	err := r.DB.GetContext(ctx, &group, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("GroupRepository:GetByCode", "code", code, "error", err)
		return nil, err
	}
	return &group, nil
}

// Create inserts the group. A concurrent insert of the same code fails with
// a unique violation, see database.IsUniqueViolation.
func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	query := r.DB.Rebind(`
		INSERT INTO schedule_groups (code, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	err := r.DB.ExecContext(ctx, query, group.Code, group.PasswordHash, group.CreatedAt, group.UpdatedAt)
	if err != nil {
		if !database.IsUniqueViolation(err) {
			logger.Error("GroupRepository:Create", "code", group.Code, "error", err)
		}
		return err
	}
	return nil
}
