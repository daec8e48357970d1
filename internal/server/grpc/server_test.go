package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/logging"
	pb "github.com/konega2/portfolio-sub001/internal/proto"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

type fakeAuth struct {
	loginErr error
	whoErr   error
	gotToken string
}

func (f *fakeAuth) Login(_ context.Context, usuario, password string) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if usuario == "" || password == "" {
		return nil, common.ErrorValidation
	}
	return &services.LoginResult{
		Token:   "tok-" + usuario,
		Profile: models.LoginProfile{ID: "a-1", Nombre: "Ana", Usuario: usuario, Email: "ana@x.test", Rol: "admin"},
	}, nil
}

func (f *fakeAuth) WhoAmI(_ context.Context, token string) (*models.Profile, error) {
	f.gotToken = token
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	if f.whoErr != nil {
		return nil, f.whoErr
	}
	return &models.Profile{ID: "a-1", Nombre: "Ana", Usuario: "ana", Rol: "admin", Telefono: "600"}, nil
}

func startBufconn(t *testing.T, fa *fakeAuth) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer("", logging.Nop{}, fa)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return conn
}

func TestLogin_OverGRPC(t *testing.T) {
	conn := startBufconn(t, &fakeAuth{})
	client := pb.NewAuthServiceClient(conn)

	resp, err := client.Login(context.Background(), pb.NewLoginRequest("ana", "tijeras"))
	require.NoError(t, err)

	assert.Equal(t, "tok-ana", pb.StringField(resp, pb.FieldToken))
	u := pb.StructField(resp, pb.FieldUsuario)
	require.NotNil(t, u)
	assert.Equal(t, "a-1", pb.StringField(u, pb.FieldID))
	assert.Equal(t, "admin", pb.StringField(u, pb.FieldRol))
	assert.NotContains(t, u.GetFields(), pb.FieldPassword)
}

func TestLogin_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		req  [2]string
		code codes.Code
		msg  string
	}{
		{"validation", nil, [2]string{"", ""}, codes.InvalidArgument, "usuario and password are required"},
		{"credentials", common.ErrorInvalidCredentials, [2]string{"a", "b"}, codes.Unauthenticated, "invalid credentials"},
		{"internal", common.ErrorInternal, [2]string{"a", "b"}, codes.Internal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := startBufconn(t, &fakeAuth{loginErr: tt.err})
			_, err := pb.NewAuthServiceClient(conn).Login(context.Background(), pb.NewLoginRequest(tt.req[0], tt.req[1]))
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
}

func TestWhoAmI_TokenSources(t *testing.T) {
	tests := []struct {
		name string
		md   metadata.MD
		want string
	}{
		{"authorization bearer", metadata.Pairs("authorization", "Bearer tok-1"), "tok-1"},
		{"access_token", metadata.Pairs("access_token", "tok-2"), "tok-2"},
		{"bearer wins", metadata.Pairs("authorization", "bearer tok-3", "access_token", "tok-4"), "tok-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAuth{}
			conn := startBufconn(t, fa)
			ctx := metadata.NewOutgoingContext(context.Background(), tt.md)

			resp, err := pb.NewAuthServiceClient(conn).WhoAmI(ctx, &emptypb.Empty{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, fa.gotToken)
			assert.Equal(t, "600", pb.StringField(resp, pb.FieldTelefono))
		})
	}
}

func TestWhoAmI_ErrorCodes(t *testing.T) {
	conn := startBufconn(t, &fakeAuth{})
	_, err := pb.NewAuthServiceClient(conn).WhoAmI(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	for err, code := range map[error]codes.Code{
		common.ErrInvalidToken:  codes.Unauthenticated,
		common.ErrTokenExpired:  codes.Unauthenticated,
		common.ErrorNotFound:    codes.NotFound,
		common.ErrorInternal:    codes.Internal,
		common.ErrorRateLimited: codes.ResourceExhausted,
	} {
		conn := startBufconn(t, &fakeAuth{whoErr: err})
		ctx := metadata.NewOutgoingContext(context.Background(), metadata.Pairs("access_token", "x"))
		_, got := pb.NewAuthServiceClient(conn).WhoAmI(ctx, &emptypb.Empty{})
		assert.Equal(t, code, status.Code(got), err.Error())
	}
}

func TestHealthService(t *testing.T) {
	conn := startBufconn(t, &fakeAuth{})
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeAuth{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, &fakeAuth{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}
