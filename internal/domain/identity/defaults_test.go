package identity

import (
	"encoding/json"
	"strings"
	"testing"

	"pet-health-records/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFrom_PicksPrimaryContacts(t *testing.T) {
	data := UserData{
		ID: " user_1 ",
		EmailAddresses: []EmailAddress{
			{ID: "idn_a", EmailAddress: "old@example.com"},
			{ID: "idn_b", EmailAddress: "new@example.com"},
		},
		PrimaryEmailAddressID: "idn_b",
		PhoneNumbers:          []PhoneNumber{{ID: "phn_1", PhoneNumber: "+34600000000"}},
		PrimaryPhoneNumberID:  "phn_1",
		FirstName:             "Ana",
		LastName:              "García",
		UnsafeMetadata:        Metadata{MetaPreferredVet: "Dr. Ruiz", MetaTimezone: "Europe/Madrid"},
	}

	p := NewProfileDefaults("").ProfileFrom(data)
	assert.Equal(t, "user_1", p.ExternalID)
	assert.Equal(t, "new@example.com", p.Email)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "+34600000000", *p.Phone)
	require.NotNil(t, p.Name)
	assert.Equal(t, "Ana García", *p.Name)
	assert.Equal(t, "Europe/Madrid", p.Timezone)
	require.NotNil(t, p.PreferredVet)
	assert.Equal(t, "Dr. Ruiz", *p.PreferredVet)
	assert.Nil(t, p.Location)
	assert.Nil(t, p.EmergencyContact)
	assert.Nil(t, p.AvatarURL)
}

func TestProfileFrom_Fallbacks(t *testing.T) {
	data := UserData{
		ID:             "user_2",
		EmailAddresses: []EmailAddress{{ID: "", EmailAddress: "ghost@example.com"}},
		UnsafeMetadata: Metadata{MetaTimezone: "   "},
	}

	p := NewProfileDefaults("Asia/Tokyo").ProfileFrom(data)
	assert.Empty(t, p.Email, "no primary id means no email match")
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Phone)
	assert.Equal(t, "Asia/Tokyo", p.Timezone)

	p = NewProfileDefaults("").ProfileFrom(UserData{ID: "user_3"})
	assert.Equal(t, users.DefaultTimezone, p.Timezone)
}

func TestMetadata_UnmarshalBounds(t *testing.T) {
	var md Metadata
	require.NoError(t, json.Unmarshal([]byte(`{"timezone":"UTC","age":3,"nested":{"a":1},"big":"`+strings.Repeat("x", MaxMetadataValueBytes+1)+`"}`), &md))
	assert.Equal(t, Metadata{"timezone": "UTC"}, md)

	fields := make(map[string]string, MaxMetadataKeys+10)
	for i := 0; i < MaxMetadataKeys+10; i++ {
		fields[string(rune('A'+i))] = "v"
	}
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &md))
	assert.Len(t, md, MaxMetadataKeys)
	assert.Contains(t, md, "A")

	require.NoError(t, json.Unmarshal([]byte(`null`), &md))
	assert.Nil(t, md)
}
