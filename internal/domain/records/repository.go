package records

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, petID, id string) (Record, error)
	// ListByPet returns newest occurred_at first.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error)
	Void(ctx context.Context, petID, id string) error
}

type ListFilter struct {
	Types []RecordType
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}
