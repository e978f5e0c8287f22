package desk

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation matches every hard constraint failure of a desk row.
	ErrConstraintViolation = errors.New("desk layout constraint violated")
	// ErrTeamSplit matches rows where a team does not sit together.
	ErrTeamSplit = errors.New("team not sitting together")
	// ErrAdjacency matches rows where a dog avoider sits next to a dog owner.
	ErrAdjacency = errors.New("person avoiding dogs sits next to a dog owner")
)

// TeamSplitError reports a team whose members form more than one run.
type TeamSplitError struct {
	// Team is the group that was reopened.
	Team TeamKey
	// Index is the desk where the team reappeared.
	Index int
}

// Error implements the error interface.
func (e *TeamSplitError) Error() string {
	return fmt.Sprintf("team %s not sitting together: reappears at desk %d", e.Team, e.Index)
}

// Is reports whether target is ErrTeamSplit or ErrConstraintViolation.
func (e *TeamSplitError) Is(target error) bool {
	return target == ErrTeamSplit || target == ErrConstraintViolation
}

// AdjacencyError reports a dog avoider seated directly next to a dog owner.
type AdjacencyError struct {
	// AvoidIndex is the desk of the person avoiding dogs.
	AvoidIndex int
	// AvoidID is the id of the person avoiding dogs.
	AvoidID string
	// HaveIndex is the desk of the neighbouring dog owner.
	HaveIndex int
	// HaveID is the id of the neighbouring dog owner.
	HaveID string
}

// Error implements the error interface.
func (e *AdjacencyError) Error() string {
	return fmt.Sprintf(
		"person with dog too close: %s at desk %d sits next to %s at desk %d",
		e.AvoidID, e.AvoidIndex, e.HaveID, e.HaveIndex,
	)
}

// Is reports whether target is ErrAdjacency or ErrConstraintViolation.
func (e *AdjacencyError) Is(target error) bool {
	return target == ErrAdjacency || target == ErrConstraintViolation
}
