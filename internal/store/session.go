package store

import (
	"context"

	"logotherapy-booking/internal/model"
)

// SessionUser returns the persisted session pointer, or nil.
func (s *Store) SessionUser(ctx context.Context) (*model.User, error) {
	var u model.User
	found, err := s.load(ctx, SessionKey, &u)
	if err != nil || !found || u == (model.User{}) {
		return nil, err
	}
	return &u, nil
}

// SetSessionUser replaces the session pointer; nil clears it.
func (s *Store) SetSessionUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return s.kv.Delete(ctx, SessionKey)
	}
	return s.save(ctx, SessionKey, u)
}
