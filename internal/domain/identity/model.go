package identity

import (
	"bytes"
	"encoding/json"
	"sort"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the envelope pushed by the identity provider. Data is decoded
// according to Type.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type PhoneNumber struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
}

// UserData is the payload of user.created and user.updated.
type UserData struct {
	ID                    string         `json:"id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	PhoneNumbers          []PhoneNumber  `json:"phone_numbers"`
	PrimaryPhoneNumberID  string         `json:"primary_phone_number_id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	UnsafeMetadata        Metadata       `json:"unsafe_metadata"`
}

// DeletedData is the payload of user.deleted.
type DeletedData struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

const (
	MaxMetadataKeys       = 32
	MaxMetadataValueBytes = 1024
)

// Metadata is the provider's free-form metadata bag reduced to string
// values. Non-string values and oversized values are dropped; at most
// MaxMetadataKeys keys are kept, in key order.
type Metadata map[string]string

func (m *Metadata) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = nil
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Metadata, min(len(keys), MaxMetadataKeys))
	for _, k := range keys {
		if len(out) == MaxMetadataKeys {
			break
		}
		var s string
		if err := json.Unmarshal(raw[k], &s); err != nil {
			continue
		}
		if len(s) > MaxMetadataValueBytes {
			continue
		}
		out[k] = s
	}
	*m = out
	return nil
}
