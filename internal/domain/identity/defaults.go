package identity

import (
	"strings"

	"pet-health-records/internal/domain/users"
)

// Metadata keys read from the provider's unsafe_metadata.
const (
	MetaTimezone         = "timezone"
	MetaLocation         = "location"
	MetaEmergencyContact = "emergencyContact"
	MetaPreferredVet     = "preferredVet"
)

// ProfileDefaults maps a metadata key to the value used when the key is
// absent or blank. Keys without an entry fall back to null.
type ProfileDefaults map[string]string

// NewProfileDefaults builds the default table. An empty timezone falls back
// to users.DefaultTimezone.
func NewProfileDefaults(timezone string) ProfileDefaults {
	if strings.TrimSpace(timezone) == "" {
		timezone = users.DefaultTimezone
	}
	return ProfileDefaults{MetaTimezone: timezone}
}

func (d ProfileDefaults) lookup(md Metadata, key string) *string {
	if v := strings.TrimSpace(md[key]); v != "" {
		return &v
	}
	if v, ok := d[key]; ok {
		return &v
	}
	return nil
}

// ProfileFrom extracts the local profile from a user payload.
func (d ProfileDefaults) ProfileFrom(data UserData) users.Profile {
	p := users.Profile{
		ExternalID:       strings.TrimSpace(data.ID),
		Name:             nonEmpty(strings.TrimSpace(strings.TrimSpace(data.FirstName) + " " + strings.TrimSpace(data.LastName))),
		AvatarURL:        nonEmpty(data.ImageURL),
		Location:         d.lookup(data.UnsafeMetadata, MetaLocation),
		EmergencyContact: d.lookup(data.UnsafeMetadata, MetaEmergencyContact),
		PreferredVet:     d.lookup(data.UnsafeMetadata, MetaPreferredVet),
	}

	for _, e := range data.EmailAddresses {
		if data.PrimaryEmailAddressID != "" && e.ID == data.PrimaryEmailAddressID {
			p.Email = e.EmailAddress
			break
		}
	}
	for _, ph := range data.PhoneNumbers {
		if data.PrimaryPhoneNumberID != "" && ph.ID == data.PrimaryPhoneNumberID {
			p.Phone = nonEmpty(ph.PhoneNumber)
			break
		}
	}

	if tz := d.lookup(data.UnsafeMetadata, MetaTimezone); tz != nil {
		p.Timezone = *tz
	} else {
		p.Timezone = users.DefaultTimezone
	}
	return p
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
