package repository

import (
	"context"
	"time"

	"terminfinder-api/core/database"
	"terminfinder-api/core/logger"
	"terminfinder-api/modules/availability/entity"
	"terminfinder-api/modules/availability/validator"
)

type AvailabilityRepositoryInterface interface {
	ReplaceUserAvailability(ctx context.Context, groupCode, userName string, availability entity.UserAvailability) error
	GetGroupSnapshot(ctx context.Context, groupCode string) (entity.Snapshot, error)
	GetUserAvailability(ctx context.Context, groupCode, userName string) (entity.UserAvailability, error)
	GetParticipants(ctx context.Context, groupCode string) ([]string, error)
}

type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) AvailabilityRepositoryInterface {
	return &AvailabilityRepository{DB: db}
}

// ReplaceUserAvailability deletes every entry of the user in the group and
// inserts the given ones in a single transaction. An empty availability
// just clears the user. On any error nothing changes.
func (r *AvailabilityRepository) ReplaceUserAvailability(ctx context.Context, groupCode, userName string, availability entity.UserAvailability) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceUserAvailability:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := tx.Rebind(`DELETE FROM availabilities WHERE group_code = ? AND user_name = ?`)
	if _, err := tx.ExecContext(ctx, deleteQuery, groupCode, userName); err != nil {
		logger.Error("AvailabilityRepository:ReplaceUserAvailability:Delete", "group_code", groupCode, "error", err)
		return err
	}

	if len(availability) > 0 {
		insertQuery := tx.Rebind(`
			INSERT INTO availabilities (group_code, user_name, avail_date, time_slot, created_at)
			VALUES (?, ?, ?, ?, ?)
		`)
		stmt, err := tx.PreparexContext(ctx, insertQuery)
		if err != nil {
			logger.Error("AvailabilityRepository:ReplaceUserAvailability:Prepare", err)
			return err
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for date, slots := range availability {
			for _, slot := range slots {
				if _, err := stmt.ExecContext(ctx, groupCode, userName, date, slot, now); err != nil {
					logger.Error("AvailabilityRepository:ReplaceUserAvailability:Insert",
						"group_code", groupCode,
						"date", date,
						"slot", slot,
						"error", err,
					)
					return err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:ReplaceUserAvailability:Commit", err)
		return err
	}
	return nil
}

const selectEntries = `
	SELECT user_name, CAST(avail_date AS TEXT) AS avail_date, time_slot
	FROM availabilities
`

func (r *AvailabilityRepository) GetGroupSnapshot(ctx context.Context, groupCode string) (entity.Snapshot, error) {
	var rows []entity.Availability
	query := r.DB.Rebind(selectEntries + ` WHERE group_code = ? ORDER BY user_name, avail_date`)
	if err := r.DB.SelectContext(ctx, &rows, query, groupCode); err != nil {
		logger.Error("AvailabilityRepository:GetGroupSnapshot", "group_code", groupCode, "error", err)
		return nil, err
	}

	snapshot := entity.Snapshot{}
	for _, row := range rows {
		ua, ok := snapshot[row.UserName]
		if !ok {
			ua = entity.UserAvailability{}
			snapshot[row.UserName] = ua
		}
		ua[row.Date] = append(ua[row.Date], row.TimeSlot)
	}
	for _, ua := range snapshot {
		sortSlots(ua)
	}
	return snapshot, nil
}

func (r *AvailabilityRepository) GetUserAvailability(ctx context.Context, groupCode, userName string) (entity.UserAvailability, error) {
	var rows []entity.Availability
	query := r.DB.Rebind(selectEntries + ` WHERE group_code = ? AND user_name = ? ORDER BY avail_date`)
	if err := r.DB.SelectContext(ctx, &rows, query, groupCode, userName); err != nil {
		logger.Error("AvailabilityRepository:GetUserAvailability", "group_code", groupCode, "error", err)
		return nil, err
	}

	ua := entity.UserAvailability{}
	for _, row := range rows {
		ua[row.Date] = append(ua[row.Date], row.TimeSlot)
	}
	sortSlots(ua)
	return ua, nil
}

func (r *AvailabilityRepository) GetParticipants(ctx context.Context, groupCode string) ([]string, error) {
	participants := []string{}
	query := r.DB.Rebind(`
		SELECT DISTINCT user_name
		FROM availabilities
		WHERE group_code = ?
		ORDER BY user_name
	`)
	if err := r.DB.SelectContext(ctx, &participants, query, groupCode); err != nil {
		logger.Error("AvailabilityRepository:GetParticipants", "group_code", groupCode, "error", err)
		return nil, err
	}
	return participants, nil
}

func sortSlots(ua entity.UserAvailability) {
	for _, slots := range ua {
		validator.SortSlots(slots)
	}
}
