package bookings_service_api

import (
	"context"

	"github.com/Domenick1991/skybook/internal/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	MetadataUsername = "username"
	MetadataPassword = "password"
)

type Authenticator interface {
	Authenticate(username, password string) (domain.Caller, error)
}

type callerKey struct{}

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

// UnaryAuthInterceptor resolves the caller from request metadata. Methods
// listed in public skip authentication.
func UnaryAuthInterceptor(auth Authenticator, public ...string) grpc.UnaryServerInterceptor {
	skip := make(map[string]struct{}, len(public))
	for _, method := range public {
		skip[method] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		caller, err := auth.Authenticate(first(md, MetadataUsername), first(md, MetadataPassword))
		if err != nil {
			return nil, toStatus(err)
		}
		return handler(WithCaller(ctx, caller), req)
	}
}

func first(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
