package therapist

import (
	"context"
	"fmt"
	"strings"

	model "github.com/zhouzirui/mindshift/backend/internal/model/therapist"
)

// Pin is a map marker for a therapist with known coordinates.
type Pin struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Verified  bool    `json:"verified"`
}

// Directory serves the verified therapists of the covered cities.
type Directory struct {
	store model.Store
}

func NewDirectory(store model.Store) *Directory {
	return &Directory{store: store}
}

// List returns every verified therapist in the served cities.
func (d *Directory) List(ctx context.Context) ([]model.Therapist, error) {
	items, err := d.store.ListVerified(ctx, model.ServedCities)
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	return items, nil
}

// Search filters List by a case-insensitive substring of name, description
// or address. An empty query returns everything.
func (d *Directory) Search(ctx context.Context, query string) ([]model.Therapist, error) {
	items, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	out := make([]model.Therapist, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Description), query) ||
			strings.Contains(strings.ToLower(item.Address), query) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Pins keeps only the entries that can be placed on a map.
func Pins(items []model.Therapist) []Pin {
	pins := make([]Pin, 0, len(items))
	for _, item := range items {
		if !item.HasLocation() {
			continue
		}
		pins = append(pins, Pin{
			ID:        item.ID,
			Name:      item.Name,
			Address:   item.Address,
			Latitude:  *item.Latitude,
			Longitude: *item.Longitude,
			Verified:  item.Verified,
		})
	}
	return pins
}
