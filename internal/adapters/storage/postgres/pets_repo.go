package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-health-records/internal/domain/pets"

	"github.com/uptrace/bun"
)

type PetsRepo struct {
	db bun.IDB
}

var _ pets.Repository = (*PetsRepo)(nil)

func NewPetsRepo(db bun.IDB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	if _, err := r.db.NewInsert().Model(toPetRow(p)).Exec(ctx); err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) GetOwned(ctx context.Context, id, userID string) (pets.Pet, error) {
	row := new(petRow)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PetsRepo) ListByUser(ctx context.Context, userID string) ([]pets.Pet, error) {
	var rows []petRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	out := make([]pets.Pet, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// Update never touches user_id or created_at.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.NewUpdate().
		Model(toPetRow(p)).
		Column(
			"name", "species", "breed", "birth_date", "weight", "sex", "is_neutered",
			"microchip_id", "color", "special_needs", "insurance_info", "photo_url", "updated_at",
		).
		Where("id = ?", p.ID).
		Where("user_id = ?", p.UserID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return expectAffected(res, pets.ErrNotFound)
}

// Delete relies on health_records.pet_id ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.NewDelete().
		Model((*petRow)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return expectAffected(res, pets.ErrNotFound)
}

func toPetRow(p pets.Pet) *petRow {
	row := &petRow{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Species:       string(p.Species),
		Breed:         p.Breed,
		BirthDate:     p.BirthDate,
		IsNeutered:    p.IsNeutered,
		MicrochipID:   p.MicrochipID,
		Color:         p.Color,
		SpecialNeeds:  p.SpecialNeeds,
		InsuranceInfo: p.InsuranceInfo,
		PhotoURL:      p.PhotoURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Weight != nil {
		row.Weight = sql.NullFloat64{Float64: *p.Weight, Valid: true}
	}
	if p.Sex != nil {
		s := string(*p.Sex)
		row.Sex = &s
	}
	return row
}

func (row *petRow) toDomain() pets.Pet {
	p := pets.Pet{
		ID:            row.ID,
		UserID:        row.UserID,
		Name:          row.Name,
		Species:       pets.Species(row.Species),
		Breed:         row.Breed,
		BirthDate:     row.BirthDate,
		IsNeutered:    row.IsNeutered,
		MicrochipID:   row.MicrochipID,
		Color:         row.Color,
		SpecialNeeds:  row.SpecialNeeds,
		InsuranceInfo: row.InsuranceInfo,
		PhotoURL:      row.PhotoURL,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.Weight.Valid {
		w := row.Weight.Float64
		p.Weight = &w
	}
	if row.Sex != nil {
		s := pets.Sex(*row.Sex)
		p.Sex = &s
	}
	return p
}
