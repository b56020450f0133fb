package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-health-records/internal/domain/users"
	"pet-health-records/internal/platform/logger"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedEvent   = errors.New("malformed event")
)

// UserSyncer is the slice of users.Service identity sync writes through.
type UserSyncer interface {
	SyncProfile(ctx context.Context, p users.Profile) (users.User, error)
	SoftDelete(ctx context.Context, externalID string) error
}

type Service struct {
	users    UserSyncer
	defaults ProfileDefaults
	log      logger.Logger
}

func NewService(u UserSyncer, defaults ProfileDefaults, log logger.Logger) *Service {
	if defaults == nil {
		defaults = NewProfileDefaults("")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: u, defaults: defaults, log: log}
}

// Handle applies one verified event. ErrMalformedEvent means the payload
// cannot be applied; any other error is a persistence failure.
func (s *Service) Handle(ctx context.Context, evt Event) error {
	switch evt.Type {
	case EventUserCreated, EventUserUpdated:
		var data UserData
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if strings.TrimSpace(data.ID) == "" {
			return fmt.Errorf("%w: missing user id", ErrMalformedEvent)
		}

		if _, err := s.users.SyncProfile(ctx, s.defaults.ProfileFrom(data)); err != nil {
			return fmt.Errorf("sync user %s: %w", data.ID, err)
		}
		s.log.Info("identity synced", map[string]any{"external_id": data.ID, "event": evt.Type})
		return nil

	case EventUserDeleted:
		var data DeletedData
		if err := json.Unmarshal(evt.Data, &data); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if strings.TrimSpace(data.ID) == "" {
			return fmt.Errorf("%w: missing user id", ErrMalformedEvent)
		}

		err := s.users.SoftDelete(ctx, data.ID)
		if errors.Is(err, users.ErrNotFound) {
			s.log.Warn("identity delete for unknown user", map[string]any{"external_id": data.ID})
			return nil
		}
		if err != nil {
			return fmt.Errorf("soft-delete user %s: %w", data.ID, err)
		}
		s.log.Info("identity soft-deleted", map[string]any{"external_id": data.ID})
		return nil

	default:
		s.log.Debug("identity event ignored", map[string]any{"event": evt.Type})
		return nil
	}
}
