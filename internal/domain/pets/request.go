package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// flexFloat accepts a JSON number, a numeric string or null. Empty strings
// decode as null.
type flexFloat struct {
	Value *float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.Value = nil
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			f.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("weight must be a number")
		}
		f.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.New("weight must be a number")
	}
	f.Value = &v
	return nil
}

// flexDate accepts "YYYY-MM-DD", an RFC 3339 timestamp, "" or null.
type flexDate struct {
	Value *time.Time
}

func (d *flexDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("birthDate must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Value = nil
		return nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Value = &t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errors.New("birthDate must be YYYY-MM-DD or RFC3339")
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	d.Value = &t
	return nil
}

// petRequest is the body of POST /pets and PATCH /pets/{petID}.
type petRequest struct {
	Name          string    `json:"name"`
	Species       Species   `json:"species" enums:"DOG,CAT,OTHER"`
	Breed         *string   `json:"breed"`
	BirthDate     flexDate  `json:"birthDate" swaggertype:"string" example:"2021-04-18"`
	Weight        flexFloat `json:"weight" swaggertype:"number" example:"25.5"`
	Sex           *Sex      `json:"sex" enums:"MALE,FEMALE,UNKNOWN"`
	IsNeutered    *bool     `json:"isNeutered"`
	MicrochipID   *string   `json:"microchipId"`
	Color         *string   `json:"color"`
	SpecialNeeds  *string   `json:"specialNeeds"`
	InsuranceInfo *string   `json:"insuranceInfo"`
	PhotoURL      *string   `json:"photoUrl"`
}

func (r petRequest) toInput() Input {
	in := Input{
		Name:          r.Name,
		Species:       r.Species,
		Breed:         r.Breed,
		BirthDate:     r.BirthDate.Value,
		Weight:        r.Weight.Value,
		Sex:           r.Sex,
		MicrochipID:   r.MicrochipID,
		Color:         r.Color,
		SpecialNeeds:  r.SpecialNeeds,
		InsuranceInfo: r.InsuranceInfo,
		PhotoURL:      r.PhotoURL,
	}
	if r.IsNeutered != nil {
		in.IsNeutered = *r.IsNeutered
	}
	return in
}

type petResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Species       Species   `json:"species"`
	Breed         *string   `json:"breed"`
	BirthDate     *string   `json:"birthDate" example:"2021-04-18"`
	Weight        *float64  `json:"weight"`
	Sex           *Sex      `json:"sex"`
	IsNeutered    bool      `json:"isNeutered"`
	MicrochipID   *string   `json:"microchipId"`
	Color         *string   `json:"color"`
	SpecialNeeds  *string   `json:"specialNeeds"`
	InsuranceInfo *string   `json:"insuranceInfo"`
	PhotoURL      *string   `json:"photoUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toPetResponse(p Pet) petResponse {
	var bd *string
	if p.BirthDate != nil {
		s := p.BirthDate.Format("2006-01-02")
		bd = &s
	}
	return petResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Name:          p.Name,
		Species:       p.Species,
		Breed:         p.Breed,
		BirthDate:     bd,
		Weight:        p.Weight,
		Sex:           p.Sex,
		IsNeutered:    p.IsNeutered,
		MicrochipID:   p.MicrochipID,
		Color:         p.Color,
		SpecialNeeds:  p.SpecialNeeds,
		InsuranceInfo: p.InsuranceInfo,
		PhotoURL:      p.PhotoURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
