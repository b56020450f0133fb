package pets

import "time"

// Species of a pet.
// @Enum DOG, CAT, OTHER
type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesOther Species = "OTHER"
)

// Sex of a pet.
// @Enum MALE, FEMALE, UNKNOWN
type Sex string

const (
	SexMale    Sex = "MALE"
	SexFemale  Sex = "FEMALE"
	SexUnknown Sex = "UNKNOWN"
)

// Pet is one animal profile. UserID is set on create and never changes;
// every read and write is scoped by it.
type Pet struct {
	ID     string
	UserID string

	Name    string
	Species Species
	Breed   *string

	BirthDate  *time.Time
	Weight     *float64
	Sex        *Sex
	IsNeutered bool

	MicrochipID   *string
	Color         *string
	SpecialNeeds  *string
	InsuranceInfo *string
	PhotoURL      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
