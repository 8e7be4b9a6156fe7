package grpc

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	pb "github.com/dmitrijs2005/invoicedash/internal/proto"
	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// formValues flattens a request struct into form values. Numbers and bools
// are rendered the way a browser would submit them; nested values are ignored.
func formValues(req *structpb.Struct) url.Values {
	values := url.Values{}
	for k, v := range req.GetFields() {
		switch x := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			values.Set(k, x.StringValue)
		case *structpb.Value_NumberValue:
			values.Set(k, strconv.FormatFloat(x.NumberValue, 'f', -1, 64))
		case *structpb.Value_BoolValue:
			values.Set(k, strconv.FormatBool(x.BoolValue))
		}
	}
	return values
}

func outcomeStruct(out actions.Outcome) (*structpb.Struct, error) {
	m := map[string]any{"kind": out.Kind.String()}
	if out.Message != "" {
		m["message"] = out.Message
	}
	if out.Location != "" {
		m["location"] = out.Location
	}
	if len(out.FieldErrors) > 0 {
		errs := make(map[string]any, len(out.FieldErrors))
		for field, msgs := range out.FieldErrors {
			list := make([]any, 0, len(msgs))
			for _, msg := range msgs {
				list = append(list, msg)
			}
			errs[field] = list
		}
		m["errors"] = errs
	}
	if out.Session != nil {
		m[common.AccessTokenHeaderName] = out.Session.AccessToken
		m[common.RefreshTokenCookieName] = out.Session.RefreshToken
	}
	return structpb.NewStruct(m)
}

func (s *GRPCServer) reply(ctx context.Context, method string, out actions.Outcome, err error) (*structpb.Struct, error) {
	if err != nil {
		s.logger.Error(ctx, "action failed", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	res, err := outcomeStruct(out)
	if err != nil {
		s.logger.Error(ctx, "encode outcome", "method", method, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return res, nil
}

func requireID(req *structpb.Struct) (string, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "id is required")
	}
	return id, nil
}

func (s *GRPCServer) CreateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := s.actions.CreateInvoice(ctx, formValues(req))
	return s.reply(ctx, pb.ActionsService_CreateInvoice_FullMethodName, out, err)
}

func (s *GRPCServer) UpdateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	out, err := s.actions.UpdateInvoice(ctx, id, formValues(req))
	return s.reply(ctx, pb.ActionsService_UpdateInvoice_FullMethodName, out, err)
}

func (s *GRPCServer) DeleteInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	out, err := s.actions.DeleteInvoice(ctx, id)
	return s.reply(ctx, pb.ActionsService_DeleteInvoice_FullMethodName, out, err)
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Info(ctx, "Registration request")
	out, err := s.actions.Register(ctx, formValues(req))
	return s.reply(ctx, pb.ActionsService_Register_FullMethodName, out, err)
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := s.actions.Authenticate(ctx, formValues(req))
	return s.reply(ctx, pb.ActionsService_Authenticate_FullMethodName, out, err)
}

// RefreshToken rotates a session for clients that cannot hold cookies.
func (s *GRPCServer) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	token := req.GetFields()[common.RefreshTokenCookieName].GetStringValue()
	if token == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh_token is required")
	}

	pair, err := s.sessions.RefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) || errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		s.logger.Error(ctx, "refresh failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return structpb.NewStruct(map[string]any{
		common.AccessTokenHeaderName:  pair.AccessToken,
		common.RefreshTokenCookieName: pair.RefreshToken,
	})
}

// CustomerAvatar signs an upload for a customer image. The customer's
// image_url is updated before the URL is returned.
func (s *GRPCServer) CustomerAvatar(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	up, err := s.customers.AvatarUpload(ctx, id, req.GetFields()["contentType"].GetStringValue())
	switch {
	case errors.Is(err, objstore.ErrUnsupportedType):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return nil, status.Error(codes.NotFound, "customer not found")
	case err != nil:
		s.logger.Error(ctx, "avatar upload failed", "customer_id", id, "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return structpb.NewStruct(map[string]any{
		"upload_url": up.URL,
		"image_url":  up.PublicURL,
		"key":        up.Key,
		"expires_at": up.Expires.UTC().Format(time.RFC3339),
	})
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": "OK"})
}
