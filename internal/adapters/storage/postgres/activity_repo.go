package postgres

import (
	"context"
	"fmt"

	"pet-health-records/internal/domain/activity"

	"github.com/uptrace/bun"
)

type ActivityRepo struct {
	db bun.IDB
}

var _ activity.Repository = (*ActivityRepo)(nil)

func NewActivityRepo(db bun.IDB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	row := &activityRow{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     string(e.Action),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]activity.Entry, error) {
	var rows []activityRow
	q := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	out := make([]activity.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, activity.Entry{
			ID:         row.ID,
			UserID:     row.UserID,
			Action:     activity.Action(row.Action),
			EntityType: activity.EntityType(row.EntityType),
			EntityID:   row.EntityID,
			Metadata:   activity.Metadata(row.Metadata),
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
