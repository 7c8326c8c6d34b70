package alerts

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/snapshot"
)

var errTestEvaluate = errors.New("test evaluate error")

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// evaluateErr is returned from Evaluate when set.
	evaluateErr error
	// last is the report returned from LastReport; nil means none yet.
	last *alert.Report
	// seen records the last roster passed to Evaluate.
	seen *health.Roster
}

// Evaluate puts every actor of the roster into the bleeding alert.
func (f *fakeService) Evaluate(_ context.Context, roster *health.Roster) (*alert.Report, error) {
	if f.evaluateErr != nil {
		return nil, f.evaluateErr
	}

	f.seen = roster

	bleeding := alert.NewResult(alert.Bleeding, roster.Actors)
	bleeding.Label = "Bleeding out"

	f.last = &alert.Report{
		Tick:        roster.Tick,
		EvaluatedAt: time.Unix(1_700_000_000, 0).UTC(),
		Results:     []*alert.Result{bleeding},
	}

	return f.last, nil
}

// LastReport returns the stored report or alert.ErrNoReport.
func (f *fakeService) LastReport(context.Context) (*alert.Report, error) {
	if f.last == nil {
		return nil, alert.ErrNoReport
	}

	return f.last, nil
}

func testRoster(t *testing.T) *structpb.Struct {
	t.Helper()

	roster, err := snapshot.EncodeRoster(&health.Roster{
		Tick: 42,
		Actors: []*health.Actor{
			{ID: "Human1", Name: "Ada"},
		},
	})
	require.NoError(t, err)

	return roster
}

// TestServer_Evaluate_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Evaluate_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Evaluate(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	bad, err := structpb.NewStruct(map[string]any{"actors": "not-a-list"})
	require.NoError(t, err)

	_, err = s.Evaluate(context.Background(), bad)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	anonymous, err := structpb.NewStruct(map[string]any{
		"actors": []any{
			map[string]any{"name": "A"},
			map[string]any{"name": "B"},
		},
	})
	require.NoError(t, err)

	_, err = s.Evaluate(context.Background(), anonymous)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	require.Contains(t, status.Convert(err).Message(), "actors[0].id")
}

// TestServer_Evaluate_ServiceError maps service failures to Internal.
func TestServer_Evaluate_ServiceError(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{evaluateErr: errTestEvaluate})

	_, err := s.Evaluate(context.Background(), testRoster(t))
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestServer_GetReport_NotFound reports NotFound before any evaluation.
func TestServer_GetReport_NotFound(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.GetReport(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.NotFound, status.Code(err))
}

// TestServer_Roundtrip exercises Evaluate and GetReport on the server implementation.
func TestServer_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	response, err := s.Evaluate(context.Background(), testRoster(t))
	require.NoError(t, err)
	require.NotNil(t, svc.seen)
	require.Equal(t, int64(42), svc.seen.Tick)

	report, err := snapshot.DecodeReport(response)
	require.NoError(t, err)
	require.Equal(t, []string{"Human1"}, report.Result(alert.Bleeding).MemberIDs())

	stored, err := s.GetReport(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)

	again, err := snapshot.DecodeReport(stored)
	require.NoError(t, err)
	require.Equal(t, report.Tick, again.Tick)
}

// TestServiceDesc_OverConnection registers the hand-declared descriptor and calls it with the client.
func TestServiceDesc_OverConnection(t *testing.T) {
	t.Parallel()

	listener := bufconn.Listen(1 << 20)

	grpcServer := grpc.NewServer()
	RegisterAlertServiceServer(grpcServer, NewServer(new(fakeService)))

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	client := NewAlertServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = client.GetReport(ctx, new(emptypb.Empty))
	require.Equal(t, codes.NotFound, status.Code(err))

	response, err := client.Evaluate(ctx, testRoster(t))
	require.NoError(t, err)

	report, err := snapshot.DecodeReport(response)
	require.NoError(t, err)
	require.Equal(t, int64(42), report.Tick)
	require.Equal(t, "Bleeding out", report.Result(alert.Bleeding).Label)
}
