package handler

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"logotherapy-booking/internal/auth"
	"logotherapy-booking/internal/booking"
	"logotherapy-booking/internal/content"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/rpc"
	"logotherapy-booking/internal/session"
)

type Handler struct {
	rpc.UnimplementedBookingServiceServer
	auth     *auth.Service
	booking  *booking.Engine
	content  *content.Provider
	sessions *session.Manager
	secret   string
	log      *slog.Logger
}

func New(a *auth.Service, b *booking.Engine, c *content.Provider, sess *session.Manager, secret string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{auth: a, booking: b, content: c, sessions: sess, secret: secret, log: log}
}

// toStatus maps service errors onto gRPC codes. Anything unexpected is
// logged and reported as Internal without detail.
func (h *Handler) toStatus(ctx context.Context, err error) error {
	var fe *model.FieldError
	switch {
	case errors.As(err, &fe):
		return status.Error(codes.InvalidArgument, fe.Error())
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, booking.ErrSlotTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, booking.ErrNotLoggedIn):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.log.ErrorContext(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
