package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	pb "github.com/dmitrijs2005/invoicedash/internal/proto"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

// protectedMethods need an access_token metadata entry.
var protectedMethods = map[string]bool{
	pb.ActionsService_CreateInvoice_FullMethodName:  true,
	pb.ActionsService_UpdateInvoice_FullMethodName:  true,
	pb.ActionsService_DeleteInvoice_FullMethodName:  true,
	pb.ActionsService_CustomerAvatar_FullMethodName: true,
}

// PrincipalFrom returns the caller of a protected method.
func PrincipalFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(principalKey).(*auth.Claims)
	return c
}

// accessTokenInterceptor rejects protected calls without a valid token. An
// expired token is reported with the ErrTokenExpired text so clients know
// to refresh.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := s.sessions.ParseAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, principalKey, claims), req)
}
