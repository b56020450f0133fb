// Package api is a typed client for the pets HTTP API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pet-health-records/internal/platform/httpclient"
)

// Pet mirrors the server's JSON representation.
type Pet struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Breed         *string   `json:"breed"`
	BirthDate     *string   `json:"birthDate"`
	Weight        *float64  `json:"weight"`
	Sex           *string   `json:"sex"`
	IsNeutered    bool      `json:"isNeutered"`
	MicrochipID   *string   `json:"microchipId"`
	Color         *string   `json:"color"`
	SpecialNeeds  *string   `json:"specialNeeds"`
	InsuranceInfo *string   `json:"insuranceInfo"`
	PhotoURL      *string   `json:"photoUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PetInput is the body of create and update calls.
type PetInput struct {
	Name          string   `json:"name"`
	Species       string   `json:"species"`
	Breed         string   `json:"breed,omitempty"`
	BirthDate     string   `json:"birthDate,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	Sex           string   `json:"sex,omitempty"`
	IsNeutered    bool     `json:"isNeutered"`
	MicrochipID   string   `json:"microchipId,omitempty"`
	Color         string   `json:"color,omitempty"`
	SpecialNeeds  string   `json:"specialNeeds,omitempty"`
	InsuranceInfo string   `json:"insuranceInfo,omitempty"`
	PhotoURL      string   `json:"photoUrl,omitempty"`
}

type Client struct {
	http *httpclient.Client
}

func New(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// ListPets returns the caller's pets in server order (newest first).
func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var out []Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets", nil, &out); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return out, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodGet, "/pets/"+url.PathEscape(id), nil, &out); err != nil {
		return Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return out, nil
}

func (c *Client) CreatePet(ctx context.Context, in PetInput) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPost, "/pets", in, &out); err != nil {
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}
	return out, nil
}

func (c *Client) UpdatePet(ctx context.Context, id string, in PetInput) (Pet, error) {
	var out Pet
	if err := c.http.DoJSON(ctx, http.MethodPatch, "/pets/"+url.PathEscape(id), in, &out); err != nil {
		return Pet{}, fmt.Errorf("update pet: %w", err)
	}
	return out, nil
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.http.DoJSON(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, &out); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("delete pet: server did not confirm")
	}
	return nil
}
