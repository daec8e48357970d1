package client

import (
	"context"
	"fmt"

	"github.com/konega2/portfolio-sub001/internal/common"
	pb "github.com/konega2/portfolio-sub001/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	tokenHolder
	conn   *grpc.ClientConn
	client pb.AuthServiceClient
}

// NewGRPCClient dials addr lazily; connection problems surface on the first
// call as ErrUnavailable.
func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	c.conn = conn
	c.client = pb.NewAuthServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the stored token to every call except Login.
func (c *GRPCClient) accessTokenInterceptor(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if method != pb.AuthService_Login_FullMethodName {
		if token := c.Token(); token != "" {
			ctx = withAccessToken(ctx, token)
		}
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Login(ctx context.Context, usuario, password string) (*Session, error) {
	resp, err := c.client.Login(ctx, pb.NewLoginRequest(usuario, password))
	if err != nil {
		return nil, mapError(err)
	}

	s := &Session{
		Token:   pb.StringField(resp, pb.FieldToken),
		Profile: profileFromStruct(pb.StructField(resp, pb.FieldUsuario)),
	}
	if s.Token == "" {
		return nil, fmt.Errorf("%w: empty token in response", common.ErrorInternal)
	}
	c.SetToken(s.Token)
	return s, nil
}

func (c *GRPCClient) WhoAmI(ctx context.Context) (*Profile, error) {
	if c.Token() == "" {
		return nil, common.ErrorUnauthorized
	}
	resp, err := c.client.WhoAmI(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	p := profileFromStruct(resp)
	return &p, nil
}

func profileFromStruct(s *structpb.Struct) Profile {
	return Profile{
		ID:       pb.StringField(s, pb.FieldID),
		Nombre:   pb.StringField(s, pb.FieldNombre),
		Usuario:  pb.StringField(s, pb.FieldUsuario),
		Email:    pb.StringField(s, pb.FieldEmail),
		Rol:      pb.StringField(s, pb.FieldRol),
		Telefono: pb.StringField(s, pb.FieldTelefono),
	}
}
