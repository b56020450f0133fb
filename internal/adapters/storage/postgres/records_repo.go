package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-health-records/internal/domain/records"

	"github.com/uptrace/bun"
)

type RecordsRepo struct {
	db bun.IDB
}

var _ records.Repository = (*RecordsRepo)(nil)

func NewRecordsRepo(db bun.IDB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	if _, err := r.db.NewInsert().Model(toRecordRow(rec)).Exec(ctx); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordsRepo) GetByID(ctx context.Context, petID, id string) (records.Record, error) {
	row := new(recordRow)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Where("pet_id = ?", petID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return records.Record{}, records.ErrNotFound
		}
		return records.Record{}, fmt.Errorf("get record: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string, filter records.ListFilter) ([]records.Record, error) {
	var rows []recordRow
	q := r.db.NewSelect().
		Model(&rows).
		Where("pet_id = ?", petID)

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		q = q.Where("type IN (?)", bun.In(types))
	}
	if filter.From != nil {
		q = q.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("occurred_at <= ?", *filter.To)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("(title ILIKE ? OR notes ILIKE ?)", like, like)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = records.DefaultListLimit
	}
	if err := q.Order("occurred_at DESC").Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]records.Record, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *RecordsRepo) Void(ctx context.Context, petID, id string) error {
	res, err := r.db.NewUpdate().
		Model((*recordRow)(nil)).
		Set("status = ?", string(records.StatusVoided)).
		Where("id = ?", id).
		Where("pet_id = ?", petID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("void record: %w", err)
	}
	return expectAffected(res, records.ErrNotFound)
}

func toRecordRow(rec records.Record) *recordRow {
	return &recordRow{
		ID:         rec.ID,
		PetID:      rec.PetID,
		Type:       string(rec.Type),
		OccurredAt: rec.OccurredAt,
		RecordedAt: rec.RecordedAt,
		Title:      rec.Title,
		Notes:      rec.Notes,
		CreatedBy:  rec.CreatedBy,
		Status:     string(rec.Status),
	}
}

func (row *recordRow) toDomain() records.Record {
	return records.Record{
		ID:         row.ID,
		PetID:      row.PetID,
		Type:       records.RecordType(row.Type),
		OccurredAt: row.OccurredAt,
		RecordedAt: row.RecordedAt,
		Title:      row.Title,
		Notes:      row.Notes,
		CreatedBy:  row.CreatedBy,
		Status:     records.Status(row.Status),
	}
}
