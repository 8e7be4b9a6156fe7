package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/invoicedash/internal/logging"
	pb "github.com/dmitrijs2005/invoicedash/internal/proto"
	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
	"google.golang.org/grpc"
)

// Actions is the form pipeline shared with the HTTP transport.
type Actions interface {
	CreateInvoice(ctx context.Context, values forms.Values) (actions.Outcome, error)
	UpdateInvoice(ctx context.Context, id string, values forms.Values) (actions.Outcome, error)
	DeleteInvoice(ctx context.Context, id string) (actions.Outcome, error)
	Register(ctx context.Context, values forms.Values) (actions.Outcome, error)
	Authenticate(ctx context.Context, values forms.Values) (actions.Outcome, error)
}

type Sessions interface {
	ParseAccessToken(token string) (*auth.Claims, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type Customers interface {
	AvatarUpload(ctx context.Context, customerID, contentType string) (*objstore.Upload, error)
}

type GRPCServer struct {
	pb.UnimplementedActionsServiceServer
	address   string
	actions   Actions
	sessions  Sessions
	customers Customers
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ac Actions, ss Sessions, cs Customers) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		actions:   ac,
		sessions:  ss,
		customers: cs,
	}
}

// newServer registers the service behind the access token interceptor.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	pb.RegisterActionsServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
