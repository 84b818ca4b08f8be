package store

import (
	"context"
	"strings"

	"logotherapy-booking/internal/model"
)

func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	found, err := s.load(ctx, UsersKey, &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

// SaveNewUser appends u unless a user with the same case-folded email exists,
// in which case it reports false and writes nothing.
func (s *Store) SaveNewUser(ctx context.Context, u *model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Users(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range all {
		if strings.EqualFold(existing.Email, u.Email) {
			return false, nil
		}
	}
	return true, s.save(ctx, UsersKey, append(all, *u))
}

// UserByEmail does a case-insensitive lookup; nil if absent.
func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	all, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			return &all[i], nil
		}
	}
	return nil, nil
}
