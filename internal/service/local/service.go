package local

import (
	"context"

	"github.com/oshokin/desk-planner/internal/domain/desk"
	"github.com/oshokin/desk-planner/internal/layout"
	"github.com/oshokin/desk-planner/internal/logger"
)

// Service arranges and checks desk rows in process.
type Service struct {
	// arranger seats people.
	arranger *layout.Arranger
}

// NewService creates a service using the given arranger options.
func NewService(opts layout.Options) *Service {
	return &Service{
		arranger: layout.NewArranger(opts),
	}
}

// CalculateDeskLayout seats people and logs how good the row is.
// It never fails; an infeasible row is logged as a warning and returned.
func (s *Service) CalculateDeskLayout(ctx context.Context, people []desk.Person) ([]desk.Person, error) {
	arranged := s.arranger.Arrange(people)

	score, err := layout.CheckOrder(arranged)
	if err != nil {
		logger.WarnKV(ctx, "Arranged row breaks a seating constraint", "people", len(people), "error", err)

		return arranged, nil
	}

	logger.InfoKV(ctx, "Desk layout calculated", "people", len(people), "score", score)

	return arranged, nil
}

// CheckOrder evaluates the row as given.
func (s *Service) CheckOrder(ctx context.Context, people []desk.Person) (int, error) {
	score, err := layout.CheckOrder(people)
	if err != nil {
		logger.DebugKV(ctx, "Desk row rejected", "people", len(people), "error", err)

		return 0, err
	}

	logger.DebugKV(ctx, "Desk row checked", "people", len(people), "score", score)

	return score, nil
}
