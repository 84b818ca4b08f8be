package handler

import (
	"context"

	"logotherapy-booking/internal/booking"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/rpc"
)

func (h *Handler) ListSlots(ctx context.Context, req *rpc.ListSlotsRequest) (*rpc.ListSlotsResponse, error) {
	slots, err := h.booking.Slots(ctx, req.Date)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	out := &rpc.ListSlotsResponse{Date: req.Date, Slots: make([]*rpc.Slot, 0, len(slots))}
	for _, s := range slots {
		out.Slots = append(out.Slots, &rpc.Slot{Time: s.Time, Available: s.Available})
	}
	return out, nil
}

func (h *Handler) Book(ctx context.Context, req *rpc.BookRequest) (*rpc.BookResponse, error) {
	a, err := h.booking.Book(ctx, booking.Request{
		Date:  req.Date,
		Time:  req.Time,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &rpc.BookResponse{Appointment: toProto(*a, "")}, nil
}

func (h *Handler) Upcoming(ctx context.Context, _ *rpc.Empty) (*rpc.AppointmentList, error) {
	entries, err := h.booking.Upcoming(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return toList(entries), nil
}

func (h *Handler) History(ctx context.Context, req *rpc.HistoryRequest) (*rpc.AppointmentList, error) {
	entries, err := h.booking.History(ctx, booking.Filter{Search: req.Search, Status: req.Status})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return toList(entries), nil
}

func toList(entries []booking.Entry) *rpc.AppointmentList {
	out := &rpc.AppointmentList{Appointments: make([]*rpc.Appointment, 0, len(entries))}
	for _, e := range entries {
		out.Appointments = append(out.Appointments, toProto(e.Appointment, e.Status))
	}
	return out
}

func toProto(a model.Appointment, st model.Status) *rpc.Appointment {
	return &rpc.Appointment{
		ID:        a.ID,
		UserEmail: a.UserEmail,
		Name:      a.Name,
		Phone:     a.Phone,
		Date:      a.Date,
		Time:      a.Time,
		CreatedAt: a.CreatedAt,
		Status:    string(st),
	}
}
