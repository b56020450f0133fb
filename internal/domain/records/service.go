package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-health-records/internal/domain/activity"
	"pet-health-records/internal/domain/pets"
	"pet-health-records/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyVoided = errors.New("record already voided")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// PetAccess resolves a pet the caller owns, or fails the way pets.Service does.
type PetAccess interface {
	Get(ctx context.Context, identityRef, petID string) (pets.Pet, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, in activity.RecordInput) (activity.Entry, error)
}

type Service struct {
	repo  Repository
	pets  PetAccess
	audit AuditRecorder
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, petAccess PetAccess, audit AuditRecorder, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		pets:  petAccess,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

type CreateInput struct {
	Type       RecordType
	OccurredAt time.Time
	Title      string
	Notes      string
}

func (s *Service) Create(ctx context.Context, identityRef, petID string, in CreateInput) (Record, error) {
	p, err := s.pets.Get(ctx, identityRef, petID)
	if err != nil {
		return Record{}, err
	}

	if !in.Type.Valid() || in.OccurredAt.IsZero() || strings.TrimSpace(in.Title) == "" {
		return Record{}, ErrInvalidInput
	}

	rec := Record{
		ID:         uuid.NewString(),
		PetID:      p.ID,
		Type:       in.Type,
		OccurredAt: in.OccurredAt.UTC(),
		RecordedAt: s.now().UTC(),
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedBy:  p.UserID,
		Status:     StatusActive,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}

	s.record(ctx, p.UserID, activity.ActionRecordCreated, rec, p.Name)
	return rec, nil
}

func (s *Service) List(ctx context.Context, identityRef, petID string, filter ListFilter) ([]Record, error) {
	p, err := s.pets.Get(ctx, identityRef, petID)
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > MaxListLimit {
		filter.Limit = DefaultListLimit
	}
	return s.repo.ListByPet(ctx, p.ID, filter)
}

// Void marks the record voided; it stays listed with its new status.
func (s *Service) Void(ctx context.Context, identityRef, petID, recordID string) (Record, error) {
	p, err := s.pets.Get(ctx, identityRef, petID)
	if err != nil {
		return Record{}, err
	}

	recordID = strings.TrimSpace(recordID)
	if _, err := uuid.Parse(recordID); err != nil {
		return Record{}, ErrNotFound
	}

	rec, err := s.repo.GetByID(ctx, p.ID, recordID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusVoided {
		return Record{}, ErrAlreadyVoided
	}

	if err := s.repo.Void(ctx, p.ID, recordID); err != nil {
		return Record{}, err
	}
	rec.Status = StatusVoided

	s.record(ctx, p.UserID, activity.ActionRecordVoided, rec, p.Name)
	return rec, nil
}

func (s *Service) record(ctx context.Context, userID string, action activity.Action, rec Record, petName string) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, activity.RecordInput{
		UserID:     userID,
		Action:     action,
		EntityType: activity.EntityRecord,
		EntityID:   rec.ID,
		Metadata: activity.Metadata{
			"petId":   rec.PetID,
			"petName": petName,
			"type":    string(rec.Type),
		},
	}); err != nil {
		s.log.Error("activity log write failed", map[string]any{
			"err":       err,
			"action":    string(action),
			"record_id": rec.ID,
		})
	}
}
