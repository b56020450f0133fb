package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-health-records/internal/domain/users"

	"github.com/uptrace/bun"
)

type UsersRepo struct {
	db bun.IDB
}

var _ users.Repository = (*UsersRepo)(nil)

func NewUsersRepo(db bun.IDB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Upsert keys on external_id. On conflict only profile columns are written,
// and updated_at moves only when one of them differs, so replaying the same
// event leaves the row untouched.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	row := toUserRow(u)

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (external_id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("name = EXCLUDED.name").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("phone = EXCLUDED.phone").
		Set("timezone = EXCLUDED.timezone").
		Set("location = EXCLUDED.location").
		Set("emergency_contact = EXCLUDED.emergency_contact").
		Set("preferred_vet = EXCLUDED.preferred_vet").
		Set(`updated_at = CASE
			WHEN (?TableAlias.email, ?TableAlias.name, ?TableAlias.avatar_url, ?TableAlias.phone,
			      ?TableAlias.timezone, ?TableAlias.location, ?TableAlias.emergency_contact, ?TableAlias.preferred_vet)
			IS DISTINCT FROM
			     (EXCLUDED.email, EXCLUDED.name, EXCLUDED.avatar_url, EXCLUDED.phone,
			      EXCLUDED.timezone, EXCLUDED.location, EXCLUDED.emergency_contact, EXCLUDED.preferred_vet)
			THEN EXCLUDED.updated_at
			ELSE ?TableAlias.updated_at
		END`).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return users.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) GetByExternalID(ctx context.Context, externalID string) (users.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().
		Model(row).
		Where("external_id = ?", externalID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("get user by external id: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) SoftDelete(ctx context.Context, externalID string, at time.Time) error {
	res, err := r.db.NewUpdate().
		Model((*userRow)(nil)).
		Set("deleted_at = ?", at).
		Set("updated_at = ?", at).
		Where("external_id = ?", externalID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("soft-delete user: %w", err)
	}
	return expectAffected(res, users.ErrNotFound)
}

func toUserRow(u users.User) *userRow {
	return &userRow{
		ID:                 u.ID,
		ExternalID:         u.ExternalID,
		Email:              u.Email,
		Name:               u.Name,
		AvatarURL:          u.AvatarURL,
		Phone:              u.Phone,
		Timezone:           u.Timezone,
		Location:           u.Location,
		EmergencyContact:   u.EmergencyContact,
		PreferredVet:       u.PreferredVet,
		SubscriptionStatus: string(u.SubscriptionStatus),
		AICredits:          u.AICredits,
		TrialStartsAt:      u.TrialStartsAt,
		DeletedAt:          u.DeletedAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (row *userRow) toDomain() users.User {
	return users.User{
		ID:                 row.ID,
		ExternalID:         row.ExternalID,
		Email:              row.Email,
		Name:               row.Name,
		AvatarURL:          row.AvatarURL,
		Phone:              row.Phone,
		Timezone:           row.Timezone,
		Location:           row.Location,
		EmergencyContact:   row.EmergencyContact,
		PreferredVet:       row.PreferredVet,
		SubscriptionStatus: users.SubscriptionStatus(row.SubscriptionStatus),
		AICredits:          row.AICredits,
		TrialStartsAt:      row.TrialStartsAt,
		DeletedAt:          row.DeletedAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

// expectAffected turns "no row matched" into notFound.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
