package desk

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/desk-planner/internal/domain/desk"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	CalculateDeskLayout(ctx context.Context, people []domain.Person) ([]domain.Person, error)
	CheckOrder(ctx context.Context, people []domain.Person) (int, error)
}

// Server implements the DeskLayoutService gRPC API.
type Server struct {
	// service provides the layout operations.
	service Service
}

var _ DeskLayoutServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// CalculateDeskLayout arranges the requested people.
func (s *Server) CalculateDeskLayout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	people, err := decodeRequest(req)
	if err != nil {
		return nil, err
	}

	arranged, err := s.service.CalculateDeskLayout(ctx, people)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to arrange desks")
	}

	response, err := EncodePeople(arranged)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return response, nil
}

// CheckOrder evaluates the requested row as given.
// Constraint violations are returned as FailedPrecondition with the violation as a detail.
func (s *Server) CheckOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	people, err := decodeRequest(req)
	if err != nil {
		return nil, err
	}

	score, err := s.service.CheckOrder(ctx, people)
	if err == nil {
		return EncodeScore(score), nil
	}

	details, ok := EncodeViolation(err)
	if !ok || !errors.Is(err, domain.ErrConstraintViolation) {
		return nil, status.Error(codes.Internal, "unable to check desk row")
	}

	st, detailErr := status.New(codes.FailedPrecondition, err.Error()).WithDetails(details)
	if detailErr != nil {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}

	return nil, st.Err()
}

// decodeRequest validates the request and extracts people.
func decodeRequest(req *structpb.Struct) ([]domain.Person, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	people, err := DecodePeople(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return people, nil
}

// ViolationFromStatus converts a FailedPrecondition status carrying a violation back into
// a *domain.TeamSplitError or *domain.AdjacencyError. It returns nil for other errors.
func ViolationFromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.FailedPrecondition {
		return nil
	}

	for _, detail := range st.Details() {
		if details, ok := detail.(*structpb.Struct); ok {
			if violation := DecodeViolation(details); errors.Is(violation, domain.ErrConstraintViolation) {
				return violation
			}
		}
	}

	return nil
}
