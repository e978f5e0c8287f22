package layout

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// shuffled returns a copy of people in a deterministic random order.
func shuffled(people []desk.Person, seed uint64) []desk.Person {
	result := slices.Clone(people)
	r := rand.New(rand.NewPCG(seed, seed+1)) //nolint:gosec // Test data only.
	r.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})

	return result
}

// ids lists the ids of people in order.
func ids(people []desk.Person) []string {
	result := make([]string, 0, len(people))
	for _, p := range people {
		result = append(result, p.ID)
	}

	return result
}

// requireSamePeople checks that got is a permutation of want.
func requireSamePeople(t *testing.T, want, got []desk.Person) {
	t.Helper()

	wantIDs := ids(want)
	gotIDs := ids(got)
	slices.Sort(wantIDs)
	slices.Sort(gotIDs)

	require.Equal(t, wantIDs, gotIDs)
}

// requireContiguous checks that every team occupies a single run of desks.
func requireContiguous(t *testing.T, people []desk.Person) {
	t.Helper()

	first := make(map[desk.TeamKey]int)
	last := make(map[desk.TeamKey]int)
	count := make(map[desk.TeamKey]int)

	for i := range people {
		key := people[i].TeamKey()
		if _, ok := first[key]; !ok {
			first[key] = i
		}

		last[key] = i
		count[key]++
	}

	for key, n := range count {
		require.Equal(t, n, last[key]-first[key]+1, "team %s is split", key)
	}
}

// requireNoAdjacency checks that no avoider sits next to an owner.
func requireNoAdjacency(t *testing.T, people []desk.Person) {
	t.Helper()

	for i := 1; i < len(people); i++ {
		pair := []desk.DogStatus{people[i-1].DogStatus, people[i].DogStatus}
		require.False(t,
			slices.Contains(pair, desk.DogStatusAvoid) && slices.Contains(pair, desk.DogStatusHave),
			"desks %d and %d seat an avoider next to an owner", i-1, i,
		)
	}
}

// baseline seats people the simplest way: by team id, then HAVE < LIKE < AVOID.
func baseline(people []desk.Person) []desk.Person {
	result := slices.Clone(people)
	slices.SortStableFunc(result, func(a, b desk.Person) int {
		if c := compareKeys(a.TeamKey(), b.TeamKey(), PlacementLast); c != 0 {
			return c
		}

		return a.DogStatus.Rank() - b.DogStatus.Rank()
	})

	return result
}

// randomTeams builds teams that each hold at least one owner, one neutral and one avoider.
func randomTeams(f *desk.Factory, r *rand.Rand, teams int) []desk.Person {
	var people []desk.Person

	statuses := []desk.DogStatus{have, like, avoid, desk.DogStatusUnset}

	for team := range teams {
		id := "team-" + strconv.Itoa(team)

		people = append(people, f.Person(id, have), f.Person(id, like), f.Person(id, avoid))
		for range r.IntN(5) {
			people = append(people, f.Person(id, statuses[r.IntN(len(statuses))]))
		}
	}

	return people
}

// TestCalculateDeskLayout_Fixtures runs the reference arrangements through the evaluator.
func TestCalculateDeskLayout_Fixtures(t *testing.T) {
	t.Parallel()

	type member struct {
		team   string
		status desk.DogStatus
	}

	cases := []struct {
		name     string
		members  []member
		want     int
		atLeast  bool
		expected []desk.DogStatus
	}{
		{
			name:    "single team no dogs",
			members: []member{{"1", like}, {"1", avoid}, {"1", like}},
			want:    0,
		},
		{
			name:    "two teams no dogs",
			members: []member{{"1", like}, {"1", like}, {"2", avoid}, {"2", avoid}, {"2", like}},
			want:    0,
		},
		{
			name:     "one team owner and avoider at either end",
			members:  []member{{"1", have}, {"1", like}, {"1", like}, {"1", avoid}},
			want:     20,
			expected: []desk.DogStatus{avoid, like, like, have},
		},
		{
			name:    "two teams owner and avoider at either end",
			members: []member{{"1", have}, {"1", like}, {"2", like}, {"2", avoid}},
			want:    20,
		},
		{
			name: "one team avoiders together owners apart",
			members: []member{
				{"1", avoid}, {"1", avoid}, {"1", like}, {"1", have}, {"1", like}, {"1", have},
			},
			want:    32,
			atLeast: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := desk.NewFactory()

			people := make([]desk.Person, 0, len(tc.members))
			for _, m := range tc.members {
				people = append(people, f.Person(m.team, m.status))
			}

			for seed := range uint64(5) {
				got := CalculateDeskLayout(shuffled(people, seed))
				requireSamePeople(t, people, got)

				score, err := CheckOrder(got)
				require.NoError(t, err)

				if tc.atLeast {
					require.GreaterOrEqual(t, score, tc.want)
				} else {
					require.Equal(t, tc.want, score)
				}

				if tc.expected != nil {
					statuses := make([]desk.DogStatus, 0, len(got))
					for _, p := range got {
						statuses = append(statuses, p.DogStatus)
					}

					require.Equal(t, tc.expected, statuses)
				}
			}
		})
	}
}

// TestCalculateDeskLayout_Empty returns an empty row.
func TestCalculateDeskLayout_Empty(t *testing.T) {
	t.Parallel()

	got := CalculateDeskLayout(nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

// TestCalculateDeskLayout_DoesNotMutateInput verifies the caller keeps ownership of its slice.
func TestCalculateDeskLayout_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{f.Person("2", have), f.Person("1", avoid), f.Person("2", like), f.Person("1", like)}
	before := desk.ClonePeople(people)

	got := CalculateDeskLayout(people)
	got[0].Name = "changed"
	got[0].Team.Name = "changed"

	if diff := cmp.Diff(before, people); diff != "" {
		t.Errorf("CalculateDeskLayout mutated its input (-want +got):\n%s", diff)
	}
}

// TestCalculateDeskLayout_Idempotent verifies that arranging an arranged row changes nothing.
func TestCalculateDeskLayout_Idempotent(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // Test data only.

	for _, teams := range []int{1, 3, 5, 8} {
		people := randomTeams(desk.NewFactory(), r, teams)

		once := CalculateDeskLayout(people)
		twice := CalculateDeskLayout(once)

		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Errorf("%d teams: second arrangement differs (-first +second):\n%s", teams, diff)
		}

		shuffledOnce := CalculateDeskLayout(shuffled(people, uint64(teams)))
		require.Equal(t, ids(once), ids(shuffledOnce))
	}
}

// TestCalculateDeskLayout_MixedTeamsAreValid covers many teams that each mix owners, neutrals and avoiders.
func TestCalculateDeskLayout_MixedTeamsAreValid(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(3, 5)) //nolint:gosec // Test data only.

	for iteration := range 40 {
		people := randomTeams(desk.NewFactory(), r, 2+iteration%9)

		got := CalculateDeskLayout(shuffled(people, uint64(iteration)))
		requireSamePeople(t, people, got)
		requireContiguous(t, got)
		requireNoAdjacency(t, got)

		score, err := CheckOrder(got)
		require.NoError(t, err)

		if base, baseErr := CheckOrder(baseline(people)); baseErr == nil {
			require.GreaterOrEqual(t, score, base)
		}
	}
}

// TestCalculateDeskLayout_SeamBetweenTeams separates an avoiding team from an owning team.
func TestCalculateDeskLayout_SeamBetweenTeams(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{f.Person("a", have), f.Person("b", avoid), f.Person("c", like)}

	got := CalculateDeskLayout(people)

	score, err := CheckOrder(got)
	require.NoError(t, err)
	require.Equal(t, 10, score)
	require.Equal(t, "c", got[1].Team.ID)
}

// TestCalculateDeskLayout_Infeasible returns a row that the evaluator rejects.
func TestCalculateDeskLayout_Infeasible(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{f.Person("1", have), f.Person("1", avoid)}

	got := CalculateDeskLayout(people)
	requireSamePeople(t, people, got)
	requireContiguous(t, got)

	_, err := CheckOrder(got)
	require.ErrorIs(t, err, desk.ErrAdjacency)
}

// TestArranger_UnassignedPlacement checks where the no-team group is seated.
func TestArranger_UnassignedPlacement(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{f.Unassigned(like), f.Person("2", like), f.Person("1", like), f.Unassigned(desk.DogStatusUnset)}

	last := CalculateDeskLayout(people)
	require.Equal(t, "1", last[0].Team.ID)
	require.Equal(t, "2", last[1].Team.ID)
	require.Nil(t, last[2].Team)
	require.Nil(t, last[3].Team)

	first := NewArranger(Options{UnassignedPlacement: PlacementFirst}).Arrange(people)
	require.Nil(t, first[0].Team)
	require.Nil(t, first[1].Team)
	require.Equal(t, "1", first[2].Team.ID)
}

// TestArranger_ClimbMatchesExhaustive compares the hill climbing path with the exhaustive search.
func TestArranger_ClimbMatchesExhaustive(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{
		f.Person("1", have), f.Person("1", like),
		f.Person("2", like), f.Person("2", avoid),
	}

	climbing := NewArranger(Options{ExhaustiveTeamLimit: 1})
	require.Equal(t, 1, climbing.Options().ExhaustiveTeamLimit)

	got := climbing.Arrange(people)
	requireContiguous(t, got)

	score, err := CheckOrder(got)
	require.NoError(t, err)
	require.Equal(t, 20, score)
}

// TestNewArranger_Defaults fills zero options.
func TestNewArranger_Defaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultOptions(), NewArranger(Options{}).Options())
}

// TestSpreadOwners shares neutral seats evenly between owners.
func TestSpreadOwners(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	owners := []desk.Person{f.Person("1", have), f.Person("1", have), f.Person("1", have)}
	neutrals := []desk.Person{f.Person("1", like), f.Person("1", like), f.Person("1", like)}

	got := spreadOwners(owners, neutrals)

	var pattern strings.Builder
	for _, p := range got {
		pattern.WriteString(p.DogStatus.String()[:1])
	}

	require.Equal(t, "HLLHLH", pattern.String())
}

// TestNextPermutation walks every permutation of three items in order.
func TestNextPermutation(t *testing.T) {
	t.Parallel()

	p := identity(3)

	var seen [][]int

	for {
		seen = append(seen, slices.Clone(p))

		if !nextPermutation(p) {
			break
		}
	}

	require.Equal(t, [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}, seen)
}
