package postgres

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type userRow struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         string `bun:"id,pk,type:uuid"`
	ExternalID string `bun:"external_id,notnull"`

	Email     string  `bun:"email,notnull"`
	Name      *string `bun:"name"`
	AvatarURL *string `bun:"avatar_url"`
	Phone     *string `bun:"phone"`

	Timezone         string  `bun:"timezone,notnull"`
	Location         *string `bun:"location"`
	EmergencyContact *string `bun:"emergency_contact"`
	PreferredVet     *string `bun:"preferred_vet"`

	SubscriptionStatus string     `bun:"subscription_status,notnull"`
	AICredits          int        `bun:"ai_credits,notnull"`
	TrialStartsAt      *time.Time `bun:"trial_starts_at"`

	DeletedAt *time.Time `bun:"deleted_at"`
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`
}

type petRow struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID     string `bun:"id,pk,type:uuid"`
	UserID string `bun:"user_id,notnull,type:uuid"`

	Name    string  `bun:"name,notnull"`
	Species string  `bun:"species,notnull"`
	Breed   *string `bun:"breed"`

	BirthDate  *time.Time      `bun:"birth_date,type:date"`
	Weight     sql.NullFloat64 `bun:"weight,type:numeric(7,2)"`
	Sex        *string         `bun:"sex"`
	IsNeutered bool            `bun:"is_neutered,notnull"`

	MicrochipID   *string `bun:"microchip_id"`
	Color         *string `bun:"color"`
	SpecialNeeds  *string `bun:"special_needs"`
	InsuranceInfo *string `bun:"insurance_info"`
	PhotoURL      *string `bun:"photo_url"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type activityRow struct {
	bun.BaseModel `bun:"table:activity_logs,alias:a"`

	ID         string            `bun:"id,pk,type:uuid"`
	UserID     string            `bun:"user_id,notnull,type:uuid"`
	Action     string            `bun:"action,notnull"`
	EntityType string            `bun:"entity_type,notnull"`
	EntityID   string            `bun:"entity_id,notnull"`
	Metadata   map[string]string `bun:"metadata,type:jsonb"`
	CreatedAt  time.Time         `bun:"created_at,notnull"`
}

type recordRow struct {
	bun.BaseModel `bun:"table:health_records,alias:r"`

	ID         string    `bun:"id,pk,type:uuid"`
	PetID      string    `bun:"pet_id,notnull,type:uuid"`
	Type       string    `bun:"type,notnull"`
	OccurredAt time.Time `bun:"occurred_at,notnull"`
	RecordedAt time.Time `bun:"recorded_at,notnull"`
	Title      string    `bun:"title,notnull"`
	Notes      string    `bun:"notes,notnull"`
	CreatedBy  string    `bun:"created_by,notnull,type:uuid"`
	Status     string    `bun:"status,notnull"`
}
