package activity

import (
	"sort"
	"time"
)

type Action string

const (
	ActionPetCreated    Action = "pet.created"
	ActionPetUpdated    Action = "pet.updated"
	ActionPetDeleted    Action = "pet.deleted"
	ActionRecordCreated Action = "record.created"
	ActionRecordVoided  Action = "record.voided"
)

type EntityType string

const (
	EntityPet    EntityType = "pet"
	EntityRecord EntityType = "record"
)

const MaxMetadataKeys = 16

// Metadata is a small string map attached to an entry.
type Metadata map[string]string

// Bounded returns a copy holding at most MaxMetadataKeys keys, in key order.
func (m Metadata) Bounded() Metadata {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > MaxMetadataKeys {
		keys = keys[:MaxMetadataKeys]
	}
	out := make(Metadata, len(keys))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// Entry is append-only: never updated or deleted.
type Entry struct {
	ID         string
	UserID     string
	Action     Action
	EntityType EntityType
	EntityID   string
	Metadata   Metadata
	CreatedAt  time.Time
}
