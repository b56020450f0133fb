package pets

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"pet-health-records/internal/domain/activity"
	"pet-health-records/internal/domain/users"
	"pet-health-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("pet not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = users.ErrNotFound
)

// OwnerResolver maps a session identity reference to the local user.
type OwnerResolver interface {
	Resolve(ctx context.Context, externalID string) (users.User, error)
}

// AuditRecorder appends activity entries.
type AuditRecorder interface {
	Record(ctx context.Context, in activity.RecordInput) (activity.Entry, error)
}

type Service struct {
	repo   Repository
	owners OwnerResolver
	audit  AuditRecorder
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerResolver, audit AuditRecorder, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		owners: owners,
		audit:  audit,
		log:    log,
		now:    time.Now,
	}
}

// Input is the full set of writable fields. Update replaces all of them, so
// an omitted optional becomes null.
type Input struct {
	Name       string     `json:"name" validate:"required,max=100"`
	Species    Species    `json:"species" validate:"required,oneof=DOG CAT OTHER"`
	Breed      *string    `json:"breed" validate:"omitempty,max=100"`
	BirthDate  *time.Time `json:"birthDate"`
	Weight     *float64   `json:"weight" validate:"omitempty,gt=0,lt=100000"`
	Sex        *Sex       `json:"sex" validate:"omitempty,oneof=MALE FEMALE UNKNOWN"`
	IsNeutered bool       `json:"isNeutered"`

	MicrochipID   *string `json:"microchipId" validate:"omitempty,max=64"`
	Color         *string `json:"color" validate:"omitempty,max=100"`
	SpecialNeeds  *string `json:"specialNeeds" validate:"omitempty,max=2000"`
	InsuranceInfo *string `json:"insuranceInfo" validate:"omitempty,max=2000"`
	PhotoURL      *string `json:"photoUrl" validate:"omitempty,url"`
}

// MaxWeight is exclusive; weights are stored as numeric(7,2).
const MaxWeight = 100000

// normalize trims strings and turns empty optionals (and a zero weight) into nil.
// Weight is rounded to the two decimals the store keeps.
func (in Input) normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = Species(strings.ToUpper(strings.TrimSpace(string(in.Species))))
	in.Breed = trimOrNil(in.Breed)
	in.MicrochipID = trimOrNil(in.MicrochipID)
	in.Color = trimOrNil(in.Color)
	in.SpecialNeeds = trimOrNil(in.SpecialNeeds)
	in.InsuranceInfo = trimOrNil(in.InsuranceInfo)
	in.PhotoURL = trimOrNil(in.PhotoURL)

	if in.Sex != nil {
		s := Sex(strings.ToUpper(strings.TrimSpace(string(*in.Sex))))
		if s == "" {
			in.Sex = nil
		} else {
			in.Sex = &s
		}
	}
	if in.Weight != nil {
		if *in.Weight == 0 {
			in.Weight = nil
		} else {
			w := roundCents(*in.Weight)
			in.Weight = &w
		}
	}
	return in
}

// roundCents rounds half away from zero on the decimal value, as numeric
// does. Formatting first absorbs the binary error in w*100 (25.555 -> 2555.4999...).
func roundCents(w float64) float64 {
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(w*100, 'f', 6, 64), 64)
	if err != nil {
		scaled = w * 100
	}
	return math.Round(scaled) / 100
}

func (in Input) apply(p *Pet) {
	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.BirthDate = in.BirthDate
	p.Weight = in.Weight
	p.Sex = in.Sex
	p.IsNeutered = in.IsNeutered
	p.MicrochipID = in.MicrochipID
	p.Color = in.Color
	p.SpecialNeeds = in.SpecialNeeds
	p.InsuranceInfo = in.InsuranceInfo
	p.PhotoURL = in.PhotoURL
}

func (s *Service) List(ctx context.Context, identityRef string) ([]Pet, error) {
	u, err := s.owner(ctx, identityRef)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, u.ID)
}

func (s *Service) Get(ctx context.Context, identityRef, petID string) (Pet, error) {
	u, err := s.owner(ctx, identityRef)
	if err != nil {
		return Pet{}, err
	}
	return s.getOwned(ctx, petID, u.ID)
}

func (s *Service) Create(ctx context.Context, identityRef string, in Input) (Pet, error) {
	u, err := s.owner(ctx, identityRef)
	if err != nil {
		return Pet{}, err
	}

	in = in.normalize()
	if err := validateInput(in); err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(&p)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	s.record(ctx, u.ID, activity.ActionPetCreated, p.ID, activity.Metadata{
		"name":    p.Name,
		"species": string(p.Species),
	})
	return p, nil
}

func (s *Service) Update(ctx context.Context, identityRef, petID string, in Input) (Pet, error) {
	u, err := s.owner(ctx, identityRef)
	if err != nil {
		return Pet{}, err
	}

	in = in.normalize()
	if err := validateInput(in); err != nil {
		return Pet{}, err
	}

	p, err := s.getOwned(ctx, petID, u.ID)
	if err != nil {
		return Pet{}, err
	}

	in.apply(&p)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}

	s.record(ctx, u.ID, activity.ActionPetUpdated, p.ID, activity.Metadata{"name": p.Name})
	return p, nil
}

// Delete removes the pet and its records. The audit entry carries the name
// of the deleted row.
func (s *Service) Delete(ctx context.Context, identityRef, petID string) error {
	u, err := s.owner(ctx, identityRef)
	if err != nil {
		return err
	}

	p, err := s.getOwned(ctx, petID, u.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, p.ID, u.ID); err != nil {
		return err
	}

	s.record(ctx, u.ID, activity.ActionPetDeleted, p.ID, activity.Metadata{"name": p.Name})
	return nil
}

func (s *Service) owner(ctx context.Context, identityRef string) (users.User, error) {
	if strings.TrimSpace(identityRef) == "" {
		return users.User{}, ErrUserNotFound
	}
	return s.owners.Resolve(ctx, identityRef)
}

func (s *Service) getOwned(ctx context.Context, petID, userID string) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if _, err := uuid.Parse(petID); err != nil {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetOwned(ctx, petID, userID)
}

// record writes the audit entry. A failure is logged and swallowed: the pet
// write already happened and is not rolled back.
func (s *Service) record(ctx context.Context, userID string, action activity.Action, petID string, md activity.Metadata) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, activity.RecordInput{
		UserID:     userID,
		Action:     action,
		EntityType: activity.EntityPet,
		EntityID:   petID,
		Metadata:   md,
	}); err != nil {
		s.log.Error("activity log write failed", map[string]any{
			"err":     err,
			"action":  string(action),
			"pet_id":  petID,
			"user_id": userID,
		})
	}
}
