package store

import (
	"context"

	"logotherapy-booking/internal/model"
)

// Appointments returns every stored appointment, oldest first.
func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	found, err := s.load(ctx, AppointmentsKey, &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveAppointment(ctx context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendAppointment(ctx, a)
}

func (s *Store) IsSlotTaken(ctx context.Context, date, time string) (bool, error) {
	all, err := s.Appointments(ctx)
	if err != nil {
		return false, err
	}
	return slotTaken(all, date, time), nil
}

// BookSlot appends a only if no appointment holds its (date, time) yet.
// Check and append happen under the store lock.
func (s *Store) BookSlot(ctx context.Context, a *model.Appointment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Appointments(ctx)
	if err != nil {
		return false, err
	}
	if slotTaken(all, a.Date, a.Time) {
		return false, nil
	}
	return true, s.save(ctx, AppointmentsKey, append(all, *a))
}

func (s *Store) appendAppointment(ctx context.Context, a *model.Appointment) error {
	all, err := s.Appointments(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, AppointmentsKey, append(all, *a))
}

func slotTaken(all []model.Appointment, date, time string) bool {
	for _, a := range all {
		if a.Date == date && a.Time == time {
			return true
		}
	}
	return false
}
