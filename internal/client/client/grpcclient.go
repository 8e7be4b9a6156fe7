package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	pb "github.com/dmitrijs2005/invoicedash/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Outcome is the decoded result of an action call.
type Outcome struct {
	Kind     string
	Message  string
	Location string
	Errors   map[string][]string
}

// Avatar is a signed customer image upload.
type Avatar struct {
	UploadURL string
	ImageURL  string
}

type GRPCClient struct {
	endpointURL  string
	conn         *grpc.ClientConn
	client       pb.ActionsServiceClient
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if s.refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, mustStruct(map[string]any{
		common.RefreshTokenCookieName: s.refreshToken,
	}))
	if rerr != nil {
		return rerr
	}

	s.accessToken = field(resp, common.AccessTokenHeaderName)
	s.refreshToken = field(resp, common.RefreshTokenCookieName)

	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL (host:port).
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	return newGRPCClient(endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	opts = append(opts, grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewActionsServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := s.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return s.mapError(err)
	}
	if field(resp, "status") != "OK" {
		return ErrUnavailable
	}
	return nil
}

// Login authenticates and keeps the returned session for later calls. A
// rejected login comes back as a failure Outcome, not an error.
func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*Outcome, error) {
	resp, err := s.client.Authenticate(ctx, mustStruct(map[string]any{
		"email":    email,
		"password": string(password),
	}))
	if err != nil {
		return nil, s.mapError(err)
	}

	if token := field(resp, common.AccessTokenHeaderName); token != "" {
		s.accessToken = token
		s.refreshToken = field(resp, common.RefreshTokenCookieName)
	}
	return decodeOutcome(resp), nil
}

// CreateInvoice submits the invoice form; amount is in dollars as typed.
func (s *GRPCClient) CreateInvoice(ctx context.Context, customerID, amount, status string) (*Outcome, error) {
	return s.action(ctx, s.client.CreateInvoice, map[string]any{
		"customerId": customerID,
		"amount":     amount,
		"status":     status,
	})
}

func (s *GRPCClient) DeleteInvoice(ctx context.Context, id string) (*Outcome, error) {
	return s.action(ctx, s.client.DeleteInvoice, map[string]any{"id": id})
}

// CustomerAvatar asks the server to sign an image upload for a customer and
// point the customer at it.
func (s *GRPCClient) CustomerAvatar(ctx context.Context, customerID, contentType string) (*Avatar, error) {
	resp, err := s.client.CustomerAvatar(ctx, mustStruct(map[string]any{
		"id":          customerID,
		"contentType": contentType,
	}))
	if err != nil {
		return nil, s.mapError(err)
	}
	return &Avatar{UploadURL: field(resp, "upload_url"), ImageURL: field(resp, "image_url")}, nil
}

type unaryCall func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (s *GRPCClient) action(ctx context.Context, call unaryCall, fields map[string]any) (*Outcome, error) {
	resp, err := call(ctx, mustStruct(fields))
	if err != nil {
		return nil, s.mapError(err)
	}
	return decodeOutcome(resp), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func decodeOutcome(resp *structpb.Struct) *Outcome {
	out := &Outcome{
		Kind:     field(resp, "kind"),
		Message:  field(resp, "message"),
		Location: field(resp, "location"),
	}
	errs := resp.GetFields()["errors"].GetStructValue()
	for name, v := range errs.GetFields() {
		if out.Errors == nil {
			out.Errors = map[string][]string{}
		}
		for _, msg := range v.GetListValue().GetValues() {
			out.Errors[name] = append(out.Errors[name], msg.GetStringValue())
		}
	}
	return out
}

func field(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

// mustStruct is only used with string-valued maps, which always convert.
func mustStruct(m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	if err != nil {
		panic(err)
	}
	return s
}
