package records

import "time"

type RecordType string

const (
	TypeVetVisit      RecordType = "VET_VISIT"
	TypeVaccine       RecordType = "VACCINE"
	TypeMedication    RecordType = "MEDICATION"
	TypeLabResult     RecordType = "LAB_RESULT"
	TypeDeworming     RecordType = "DEWORMING"
	TypeFleaTreatment RecordType = "FLEA_TREATMENT"
	TypeWeight        RecordType = "WEIGHT"
	TypeNote          RecordType = "NOTE"
)

func (t RecordType) Valid() bool {
	switch t {
	case TypeVetVisit, TypeVaccine, TypeMedication, TypeLabResult,
		TypeDeworming, TypeFleaTreatment, TypeWeight, TypeNote:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)

// Record is one health entry of a pet. Records are voided, never edited;
// they are removed only together with their pet.
type Record struct {
	ID    string
	PetID string

	Type RecordType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	CreatedBy string // users.id
	Status    Status
}
