package layout

import (
	"slices"

	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// Placement decides where people without a team start out in the row.
type Placement string

const (
	// PlacementFirst seats the no-team group before every team.
	PlacementFirst Placement = "first"
	// PlacementLast seats the no-team group after every team.
	PlacementLast Placement = "last"
)

const (
	// DefaultExhaustiveTeamLimit is the largest number of teams whose every order is tried.
	DefaultExhaustiveTeamLimit = 5
	// DefaultImprovementPasses bounds hill climbing over larger rows.
	DefaultImprovementPasses = 32

	// exhaustiveBudget caps the number of rows scored by the exhaustive search.
	exhaustiveBudget = 50_000
)

// Options tunes the arranger. Zero values fall back to the defaults.
type Options struct {
	// UnassignedPlacement is the initial position of the no-team group.
	UnassignedPlacement Placement
	// ExhaustiveTeamLimit is the largest team count searched exhaustively.
	ExhaustiveTeamLimit int
	// ImprovementPasses bounds the hill climbing used above that limit.
	ImprovementPasses int
}

// DefaultOptions returns the options used by CalculateDeskLayout.
func DefaultOptions() Options {
	return Options{
		UnassignedPlacement: PlacementLast,
		ExhaustiveTeamLimit: DefaultExhaustiveTeamLimit,
		ImprovementPasses:   DefaultImprovementPasses,
	}
}

// Arranger seats people so teams stay together and the CheckOrder score is as high as it can find.
// It is stateless and safe for concurrent use.
type Arranger struct {
	opts Options
}

// NewArranger returns an arranger with the given options.
func NewArranger(opts Options) *Arranger {
	defaults := DefaultOptions()

	if opts.UnassignedPlacement == "" {
		opts.UnassignedPlacement = defaults.UnassignedPlacement
	}

	if opts.ExhaustiveTeamLimit <= 0 {
		opts.ExhaustiveTeamLimit = defaults.ExhaustiveTeamLimit
	}

	if opts.ImprovementPasses <= 0 {
		opts.ImprovementPasses = defaults.ImprovementPasses
	}

	return &Arranger{
		opts: opts,
	}
}

// Options returns the effective options.
func (a *Arranger) Options() Options {
	return a.opts
}

// CalculateDeskLayout arranges people with the default options.
func CalculateDeskLayout(people []desk.Person) []desk.Person {
	return NewArranger(DefaultOptions()).Arrange(people)
}

// Arrange returns a new row holding every person exactly once.
// Teams are contiguous; among the candidate rows that keep dog avoiders away from
// dog owners the one with the highest CheckOrder score wins. When no such row exists
// the best-effort row is returned and CheckOrder reports the violation.
// The input slice is not modified, and the result depends only on the set of people given.
func (a *Arranger) Arrange(people []desk.Person) []desk.Person {
	if len(people) == 0 {
		return []desk.Person{}
	}

	blocks := buildBlocks(desk.ClonePeople(people), a.opts.UnassignedPlacement)

	if result, ok := a.exhaustive(blocks); ok {
		return result
	}

	return a.climb(blocks)
}

// candidate is a scored row.
type candidate struct {
	people   []desk.Person
	score    int
	feasible bool
}

func evaluate(people []desk.Person) candidate {
	score, err := CheckOrder(people)

	return candidate{
		people:   people,
		score:    score,
		feasible: err == nil,
	}
}

// betterThan prefers valid rows, then higher scores.
func (c *candidate) betterThan(other *candidate) bool {
	if c.feasible != other.feasible {
		return c.feasible
	}

	return c.score > other.score
}

// materialize concatenates the chosen variant of each block in order.
func materialize(blocks []*block, order, choice []int) []desk.Person {
	size := 0
	for _, b := range blocks {
		size += len(b.variants[0].people)
	}

	result := make([]desk.Person, 0, size)
	for _, idx := range order {
		result = append(result, blocks[idx].variants[choice[idx]].people...)
	}

	return result
}

// exhaustive scores every block order and every seam-compatible choice of variants.
// It gives up when the search space is too large or no valid row exists.
func (a *Arranger) exhaustive(blocks []*block) ([]desk.Person, bool) {
	if len(blocks) > a.opts.ExhaustiveTeamLimit || !withinBudget(blocks) {
		return nil, false
	}

	var (
		order  = identity(len(blocks))
		choice = make([]int, len(blocks))
		best   *candidate
	)

	for {
		enumerate(blocks, order, choice, 0, &best)

		if !nextPermutation(order) {
			break
		}
	}

	if best == nil || !best.feasible {
		return nil, false
	}

	return best.people, true
}

// enumerate picks variants position by position, skipping seams that seat an avoider next to an owner.
func enumerate(blocks []*block, order, choice []int, pos int, best **candidate) {
	if pos == len(order) {
		c := evaluate(materialize(blocks, order, choice))
		if *best == nil || c.betterThan(*best) {
			*best = &c
		}

		return
	}

	current := blocks[order[pos]]

	for v := range current.variants {
		if pos > 0 {
			prevIdx := order[pos-1]
			if !compatible(blocks[prevIdx].variants[choice[prevIdx]].right, current.variants[v].left) {
				continue
			}
		}

		choice[order[pos]] = v
		enumerate(blocks, order, choice, pos+1, best)
	}
}

// withinBudget reports whether orders times variant choices stays under exhaustiveBudget.
func withinBudget(blocks []*block) bool {
	total := 1

	for i, b := range blocks {
		total *= (i + 1) * len(b.variants)
		if total > exhaustiveBudget {
			return false
		}
	}

	return true
}

// climb starts from a greedy row and applies the best block swap or variant change until none helps.
func (a *Arranger) climb(blocks []*block) []desk.Person {
	order := identity(len(blocks))
	slices.SortStableFunc(order, func(x, y int) int {
		return blocks[x].class() - blocks[y].class()
	})

	choice := assignVariants(blocks, order, nil)
	current := evaluate(materialize(blocks, order, choice))

	for range a.opts.ImprovementPasses {
		next, nextOrder, nextChoice := bestNeighbour(blocks, order, choice)
		if next == nil || !next.betterThan(&current) {
			break
		}

		current, order, choice = *next, nextOrder, nextChoice
	}

	return current.people
}

// bestNeighbour scores every swap of two blocks and every alternative variant of one block.
// Swaps repair seams with assignVariants, keeping the current variants where possible.
func bestNeighbour(blocks []*block, order, choice []int) (best *candidate, bestOrder, bestChoice []int) {
	consider := func(o, c []int) {
		next := evaluate(materialize(blocks, o, c))
		if best == nil || next.betterThan(best) {
			best, bestOrder, bestChoice = &next, o, c
		}
	}

	for i := range order {
		for j := i + 1; j < len(order); j++ {
			swapped := slices.Clone(order)
			swapped[i], swapped[j] = swapped[j], swapped[i]

			consider(swapped, assignVariants(blocks, swapped, choice))
		}
	}

	for idx, b := range blocks {
		for v := range b.variants {
			if v == choice[idx] {
				continue
			}

			changed := slices.Clone(choice)
			changed[idx] = v

			consider(order, changed)
		}
	}

	return best, bestOrder, bestChoice
}

// assignVariants picks a variant per block so no seam seats an avoider next to an owner.
// The variant in prefer (or the first one) is kept whenever a compatible completion exists.
// When no compatible choice exists the preferred variants are kept.
func assignVariants(blocks []*block, order, prefer []int) []int {
	n := len(order)

	// completes[i][v]: positions i..n-1 can be seated starting with variant v at position i.
	completes := make([][]bool, n)

	for i := n - 1; i >= 0; i-- {
		current := blocks[order[i]]
		completes[i] = make([]bool, len(current.variants))

		for v := range current.variants {
			if i == n-1 {
				completes[i][v] = true

				continue
			}

			next := blocks[order[i+1]]
			for w := range next.variants {
				if completes[i+1][w] && compatible(current.variants[v].right, next.variants[w].left) {
					completes[i][v] = true

					break
				}
			}
		}
	}

	choice := make([]int, len(blocks))
	if prefer != nil {
		copy(choice, prefer)
	}

	previous := endNeutral

	for i, idx := range order {
		current := blocks[idx]
		pick := -1

		for _, v := range append([]int{choice[idx]}, identity(len(current.variants))...) {
			if completes[i][v] && compatible(previous, current.variants[v].left) {
				pick = v

				break
			}
		}

		if pick >= 0 {
			choice[idx] = pick
		}

		previous = current.variants[choice[idx]].right
	}

	return choice
}

func identity(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}

	return result
}

// nextPermutation rearranges p into the next lexicographic permutation.
// It returns false once p is the last permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}

	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}

	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])

	return true
}
