package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/konega2/portfolio-sub001/internal/common"
	pb "github.com/konega2/portfolio-sub001/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accessTokenKey ctxKey = "accessToken"

// accessTokenInterceptor copies the presented token into the context for
// methods that need one. Validation is left to the auth service so that
// every transport reports the same errors.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == pb.AuthService_WhoAmI_FullMethodName {
		ctx = context.WithValue(ctx, accessTokenKey, tokenFromMetadata(ctx))
	}
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "rpc completed",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, err
}

// tokenFromMetadata accepts "authorization: Bearer <token>" and falls back to
// the bare access_token key.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(common.AuthorizationHeaderName) {
		parts := strings.Fields(v)
		if len(parts) == 2 && strings.EqualFold(parts[0], common.BearerScheme) {
			return parts[1]
		}
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func accessTokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(accessTokenKey).(string)
	return v
}
