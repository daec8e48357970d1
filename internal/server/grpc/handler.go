package grpc

import (
	"context"
	"errors"

	"github.com/konega2/portfolio-sub001/internal/common"
	pb "github.com/konega2/portfolio-sub001/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.auth.Login(ctx, pb.StringField(req, pb.FieldUsuario), pb.StringField(req, pb.FieldPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	p := res.Profile
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldToken: structpb.NewStringValue(res.Token),
		pb.FieldUsuario: structpb.NewStructValue(pb.StringStruct(map[string]string{
			pb.FieldID:      p.ID,
			pb.FieldNombre:  p.Nombre,
			pb.FieldUsuario: p.Usuario,
			pb.FieldEmail:   p.Email,
			pb.FieldRol:     p.Rol,
		})),
	}}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	profile, err := s.auth.WhoAmI(ctx, accessTokenFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return pb.StringStruct(map[string]string{
		pb.FieldID:       profile.ID,
		pb.FieldNombre:   profile.Nombre,
		pb.FieldEmail:    profile.Email,
		pb.FieldUsuario:  profile.Usuario,
		pb.FieldRol:      profile.Rol,
		pb.FieldTelefono: profile.Telefono,
	}), nil
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	msg := common.PublicMessage(err)
	switch common.KindOf(err) {
	case common.KindValidation:
		return status.Error(codes.InvalidArgument, msg)
	case common.KindAuth:
		return status.Error(codes.Unauthenticated, msg)
	case common.KindNotFound:
		return status.Error(codes.NotFound, msg)
	case common.KindRateLimited:
		return status.Error(codes.ResourceExhausted, msg)
	default:
		if !errors.Is(err, common.ErrorInternal) {
			s.logger.Error(ctx, "unmapped service error", "error", err)
		}
		return status.Error(codes.Internal, msg)
	}
}
