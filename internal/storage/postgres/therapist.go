package postgres

import (
	"context"

	"github.com/zhouzirui/mindshift/backend/internal/model/therapist"
)

// ListVerified implements therapist.Store.
func (s *Store) ListVerified(ctx context.Context, cities []string) ([]therapist.Therapist, error) {
	var models []TherapistModel
	if err := s.db.WithContext(ctx).
		Where("verified = ? AND city IN ?", true, cities).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]therapist.Therapist, 0, len(models))
	for _, m := range models {
		out = append(out, therapistFromModel(m))
	}
	return out, nil
}

func therapistToModel(t therapist.Therapist) TherapistModel {
	return TherapistModel{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Address:     t.Address,
		City:        t.City,
		Latitude:    t.Latitude,
		Longitude:   t.Longitude,
		Email:       t.Email,
		Phone:       t.Phone,
		Verified:    t.Verified,
	}
}

func therapistFromModel(m TherapistModel) therapist.Therapist {
	return therapist.Therapist{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Address:     m.Address,
		City:        m.City,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Email:       m.Email,
		Phone:       m.Phone,
		Verified:    m.Verified,
	}
}
