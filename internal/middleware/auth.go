package middleware

import (
	"context"
	"strings"

	"logotherapy-booking/internal/auth"
	"logotherapy-booking/internal/model"
	"logotherapy-booking/internal/rpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// need a token for these; Logout is open
var guarded = map[string]bool{
	rpc.MethodMe:       true,
	rpc.MethodBook:     true,
	rpc.MethodUpcoming: true,
	rpc.MethodHistory:  true,
}

// Session yields the user currently logged in to this instance.
type Session interface {
	Current() *model.User
}

// Auth checks the bearer token on guarded methods. The token's email must
// still be the session user; a token outliving its session is refused.
func Auth(secret string, sess Session) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if !guarded[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimPrefix(vals[0], "Bearer ")
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}

		cur := sess.Current()
		if cur == nil || !strings.EqualFold(cur.Email, claims.Email) {
			return nil, status.Error(codes.Unauthenticated, "session ended")
		}

		return next(ctx, req)
	}
}
