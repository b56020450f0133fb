package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	UserID     string
	Action     Action
	EntityType EntityType
	EntityID   string
	Metadata   Metadata
}

// Record appends one entry. Callers treat failures as best-effort.
func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	if strings.TrimSpace(in.UserID) == "" || in.Action == "" || in.EntityType == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Action:     in.Action,
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Metadata:   in.Metadata.Bounded(),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
