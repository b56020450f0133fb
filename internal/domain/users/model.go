package users

import "time"

// SubscriptionStatus is owned by billing; identity sync only sets the
// initial value.
type SubscriptionStatus string

const (
	SubscriptionTrialPending SubscriptionStatus = "TRIAL_PENDING"
	SubscriptionTrialing     SubscriptionStatus = "TRIALING"
	SubscriptionActive       SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue      SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled     SubscriptionStatus = "CANCELED"
)

// User is the local projection of an identity provider account.
// ExternalID is unique; rows are soft-deleted, never removed.
type User struct {
	ID         string
	ExternalID string

	Email     string
	Name      *string
	AvatarURL *string
	Phone     *string

	Timezone         string
	Location         *string
	EmergencyContact *string
	PreferredVet     *string

	SubscriptionStatus SubscriptionStatus
	AICredits          int
	TrialStartsAt      *time.Time

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Deleted() bool { return u.DeletedAt != nil }

// Profile holds the fields identity sync is allowed to write.
type Profile struct {
	ExternalID string

	Email     string
	Name      *string
	AvatarURL *string
	Phone     *string

	Timezone         string
	Location         *string
	EmergencyContact *string
	PreferredVet     *string
}

// Apply copies the profile onto u and reports whether anything changed.
func (p Profile) Apply(u *User) bool {
	changed := u.Email != p.Email ||
		u.Timezone != p.Timezone ||
		!sameString(u.Name, p.Name) ||
		!sameString(u.AvatarURL, p.AvatarURL) ||
		!sameString(u.Phone, p.Phone) ||
		!sameString(u.Location, p.Location) ||
		!sameString(u.EmergencyContact, p.EmergencyContact) ||
		!sameString(u.PreferredVet, p.PreferredVet)

	u.Email = p.Email
	u.Name = p.Name
	u.AvatarURL = p.AvatarURL
	u.Phone = p.Phone
	u.Timezone = p.Timezone
	u.Location = p.Location
	u.EmergencyContact = p.EmergencyContact
	u.PreferredVet = p.PreferredVet
	return changed
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
