package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"logotherapy-booking/internal/auth"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/rpc"
)

func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {
	u, err := h.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return h.authResponse(ctx, u)
}

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	u, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return h.authResponse(ctx, u)
}

func (h *Handler) authResponse(ctx context.Context, u *model.User) (*rpc.AuthResponse, error) {
	tok, err := auth.MakeToken(u.Email, h.secret)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &rpc.AuthResponse{Token: tok, User: toUser(u)}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	if err := h.auth.Logout(ctx); err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) Me(ctx context.Context, _ *rpc.Empty) (*rpc.User, error) {
	u := h.sessions.Current()
	if u == nil {
		return nil, status.Error(codes.Unauthenticated, "not logged in")
	}
	return toUser(u), nil
}

// never exposes the password hash
func toUser(u *model.User) *rpc.User {
	return &rpc.User{Name: u.Name, Email: u.Email}
}
