package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/invoicedash/internal/common"
	"github.com/dmitrijs2005/invoicedash/internal/logging"
	pb "github.com/dmitrijs2005/invoicedash/internal/proto"
	"github.com/dmitrijs2005/invoicedash/internal/server/actions"
	"github.com/dmitrijs2005/invoicedash/internal/server/auth"
	"github.com/dmitrijs2005/invoicedash/internal/server/forms"
	"github.com/dmitrijs2005/invoicedash/internal/server/objstore"
	"github.com/dmitrijs2005/invoicedash/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type fakeActions struct {
	out    actions.Outcome
	err    error
	id     string
	values forms.Values
	caller *auth.Claims
}

func (f *fakeActions) result(ctx context.Context, v forms.Values) (actions.Outcome, error) {
	f.values = v
	f.caller = PrincipalFrom(ctx)
	return f.out, f.err
}

func (f *fakeActions) CreateInvoice(ctx context.Context, v forms.Values) (actions.Outcome, error) {
	return f.result(ctx, v)
}

func (f *fakeActions) UpdateInvoice(ctx context.Context, id string, v forms.Values) (actions.Outcome, error) {
	f.id = id
	return f.result(ctx, v)
}

func (f *fakeActions) DeleteInvoice(ctx context.Context, id string) (actions.Outcome, error) {
	f.id = id
	return f.result(ctx, nil)
}

func (f *fakeActions) Register(ctx context.Context, v forms.Values) (actions.Outcome, error) {
	return f.result(ctx, v)
}

func (f *fakeActions) Authenticate(ctx context.Context, v forms.Values) (actions.Outcome, error) {
	return f.result(ctx, v)
}

type fakeCustomers struct {
	id, contentType string
	err             error
}

func (f *fakeCustomers) AvatarUpload(ctx context.Context, id, contentType string) (*objstore.Upload, error) {
	f.id, f.contentType = id, contentType
	if f.err != nil {
		return nil, f.err
	}
	return &objstore.Upload{
		Key:       "customers/" + id + "/a.png",
		URL:       "https://s3.local/put",
		PublicURL: "https://s3.local/customers/" + id + "/a.png",
		Expires:   time.Date(2026, 10, 18, 12, 15, 0, 0, time.UTC),
	}, nil
}

type fakeSessions struct{}

func (fakeSessions) ParseAccessToken(token string) (*auth.Claims, error) {
	switch token {
	case "good":
		return &auth.Claims{UserID: "u-1", Email: "user@nextmail.com"}, nil
	case "stale":
		return nil, common.ErrTokenExpired
	}
	return nil, common.ErrInvalidToken
}

func (fakeSessions) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	switch token {
	case "r-ok":
		return &services.TokenPair{AccessToken: "good", RefreshToken: "r-next"}, nil
	case "r-expired":
		return nil, common.ErrRefreshTokenExpired
	}
	return nil, common.ErrorUnauthorized
}

// startBufconn serves s in memory and returns a client connected to it.
func startBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return conn
}

func newTestServer(a *fakeActions) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, a, fakeSessions{}, &fakeCustomers{})
}

func newTestClient(t *testing.T, s *GRPCServer) pb.ActionsServiceClient {
	return pb.NewActionsServiceClient(startBufconn(t, s))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeActions{})

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
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeActions{}, fakeSessions{}, &fakeCustomers{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}
