package layout

import (
	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// AvoidWeight multiplies the free desks between a dog avoider and the nearest owner.
const AvoidWeight = 10

// noOwner marks the absence of a dog owner on one side of a desk.
const noOwner = -1

// Report is the detailed outcome of evaluating a desk row.
type Report struct {
	// Score is the total of all contributions; zero when Violation is set.
	Score int
	// Contributions holds the score contributed by each desk.
	Contributions []int
	// Distances holds the free desks between each person and the nearest other owner,
	// or -1 when there is no owner to measure against.
	Distances []int
	// Violation is the hard constraint failure, nil for a valid row.
	Violation error
}

// Valid reports whether the row passed both hard constraints.
func (r *Report) Valid() bool {
	return r.Violation == nil
}

// CheckOrder verifies that teams sit together and no dog avoider sits next to a dog owner,
// then returns the row score: ten per free desk between every avoider and the nearest owner
// plus one per free desk between every owner and the nearest other owner.
// It returns a *desk.TeamSplitError or *desk.AdjacencyError for invalid rows.
func CheckOrder(people []desk.Person) (int, error) {
	if err := checkTeams(people); err != nil {
		return 0, err
	}

	var (
		before, after = nearestOwners(people)
		score         int
	)

	for i := range people {
		points, err := contribution(people, i, before[i], after[i])
		if err != nil {
			return 0, err
		}

		score += points
	}

	return score, nil
}

// Evaluate runs the same checks as CheckOrder and keeps the per-desk breakdown.
// On a team split only Violation is set; on an adjacency the contributions
// of the desks left of the offending one are kept.
func Evaluate(people []desk.Person) *Report {
	report := &Report{
		Contributions: make([]int, len(people)),
		Distances:     make([]int, len(people)),
	}

	if err := checkTeams(people); err != nil {
		report.Violation = err

		return report
	}

	before, after := nearestOwners(people)

	for i := range people {
		report.Distances[i] = distance(i, before[i], after[i])

		points, err := contribution(people, i, before[i], after[i])
		if err != nil {
			report.Violation = err
			report.Score = 0

			return report
		}

		report.Contributions[i] = points
		report.Score += points
	}

	return report
}

// checkTeams returns a TeamSplitError for the first desk that reopens a team already left.
func checkTeams(people []desk.Person) error {
	seen := make(map[desk.TeamKey]struct{}, len(people))

	for i := range people {
		key := people[i].TeamKey()

		if i > 0 && people[i-1].TeamKey() != key {
			if _, ok := seen[key]; ok {
				return &desk.TeamSplitError{
					Team:  key,
					Index: i,
				}
			}
		}

		seen[key] = struct{}{}
	}

	return nil
}

// nearestOwners returns, for every desk, the index of the closest dog owner strictly
// to the left and strictly to the right, noOwner when there is none.
func nearestOwners(people []desk.Person) (before, after []int) {
	before = make([]int, len(people))
	after = make([]int, len(people))

	last := noOwner
	for i := range people {
		before[i] = last

		if people[i].DogStatus == desk.DogStatusHave {
			last = i
		}
	}

	last = noOwner
	for i := len(people) - 1; i >= 0; i-- {
		after[i] = last

		if people[i].DogStatus == desk.DogStatusHave {
			last = i
		}
	}

	return before, after
}

// distance counts the free desks between desk i and the closer of the two owners.
func distance(i, before, after int) int {
	switch {
	case before == noOwner && after == noOwner:
		return noOwner
	case before == noOwner:
		return after - i - 1
	case after == noOwner:
		return i - before - 1
	default:
		return min(after-i, i-before) - 1
	}
}

// contribution scores desk i given its nearest owners.
func contribution(people []desk.Person, i, before, after int) (int, error) {
	d := distance(i, before, after)
	if d == noOwner {
		return 0, nil
	}

	switch people[i].DogStatus {
	case desk.DogStatusAvoid:
		if d == 0 {
			owner := before
			if owner == noOwner || i-owner != 1 {
				owner = after
			}

			return 0, &desk.AdjacencyError{
				AvoidIndex: i,
				AvoidID:    people[i].ID,
				HaveIndex:  owner,
				HaveID:     people[owner].ID,
			}
		}

		return d * AvoidWeight, nil
	case desk.DogStatusHave:
		return d, nil
	default:
		return 0, nil
	}
}
