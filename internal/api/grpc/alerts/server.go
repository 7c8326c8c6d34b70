package alerts

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/logger"
	"github.com/Snorps/better-medical-alerts/internal/snapshot"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Evaluate(ctx context.Context, roster *health.Roster) (*alert.Report, error)
	LastReport(ctx context.Context) (*alert.Report, error)
}

// Server implements AlertServiceServer on top of a Service.
type Server struct {
	// service provides the evaluation logic.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Evaluate decodes the roster, evaluates it and encodes the report.
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "roster is required")
	}

	roster, err := snapshot.DecodeRoster(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid roster: %v", err)
	}

	report, err := s.service.Evaluate(ctx, roster)
	if err != nil {
		logger.ErrorKV(ctx, "Evaluation failed", "error", err)

		return nil, status.Error(codes.Internal, "unable to evaluate roster")
	}

	return encode(report)
}

// GetReport returns the last report produced from the watched snapshot.
func (s *Server) GetReport(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	report, err := s.service.LastReport(ctx)

	switch {
	case errors.Is(err, alert.ErrNoReport):
		return nil, status.Error(codes.NotFound, "no snapshot evaluated yet")
	case err != nil:
		return nil, status.Error(codes.Internal, "unable to read report")
	}

	return encode(report)
}

func encode(report *alert.Report) (*structpb.Struct, error) {
	out, err := snapshot.EncodeReport(report)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode report")
	}

	return out, nil
}
