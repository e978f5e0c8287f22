package planner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/desk-planner/internal/config"
	"github.com/oshokin/desk-planner/internal/domain/desk"
	"github.com/oshokin/desk-planner/internal/layout"
	"github.com/oshokin/desk-planner/internal/repository/roster"
)

const twoTeamsRoster = `
people:
  - {id: a, name: Alice, dog_status: HAVE, team: {id: "1", name: Platform}}
  - {id: b, name: Bob, dog_status: LIKE, team: {id: "1", name: Platform}}
  - {id: c, name: Carol, dog_status: LIKE, team: {id: "2", name: Payments}}
  - {id: d, name: Dave, dog_status: AVOID, team: {id: "2", name: Payments}}
`

// writeFixtures creates settings and roster files and returns base options.
func writeFixtures(t *testing.T, rosterYAML string) *Options {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "settings.yaml")
	rosterPath := filepath.Join(dir, "roster.yaml")

	require.NoError(t, config.Save(configPath, &config.Config{LogLevel: "error"}))
	require.NoError(t, os.WriteFile(rosterPath, []byte(rosterYAML), config.DefaultFilePermissions))

	return &Options{
		ConfigPath: configPath,
		RosterPath: rosterPath,
		Out:        new(bytes.Buffer),
	}
}

// TestRunArrange seats the roster, prints it and saves a valid row.
func TestRunArrange(t *testing.T) {
	t.Parallel()

	opts := writeFixtures(t, twoTeamsRoster)
	opts.OutputPath = filepath.Join(t.TempDir(), "arranged.yaml")

	require.NoError(t, RunArrange(context.Background(), opts))

	out := opts.Out.(*bytes.Buffer).String()
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "Payments")
	require.Contains(t, out, "Score: 20")

	arranged, err := roster.NewFileRepository(opts.OutputPath).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, arranged, 4)

	score, err := layout.CheckOrder(arranged)
	require.NoError(t, err)
	require.Equal(t, 20, score)
}

// TestRunArrange_Infeasible reports the violation after printing the row.
func TestRunArrange_Infeasible(t *testing.T) {
	t.Parallel()

	opts := writeFixtures(t, `
people:
  - {id: a, name: Alice, dog_status: HAVE, team: {id: "1"}}
  - {id: b, name: Bob, dog_status: AVOID, team: {id: "1"}}
`)

	err := RunArrange(context.Background(), opts)
	require.ErrorIs(t, err, ErrInfeasible)
	require.ErrorIs(t, err, desk.ErrAdjacency)
	require.Contains(t, opts.Out.(*bytes.Buffer).String(), "Violation:")
}

// TestRunCheck evaluates the roster order as given.
func TestRunCheck(t *testing.T) {
	t.Parallel()

	opts := writeFixtures(t, twoTeamsRoster)
	require.NoError(t, RunCheck(context.Background(), opts))
	require.Contains(t, opts.Out.(*bytes.Buffer).String(), "Score: 20")

	split := writeFixtures(t, `
people:
  - {id: a, name: Alice, team: {id: "1"}}
  - {id: b, name: Bob, team: {id: "2"}}
  - {id: c, name: Carol, team: {id: "1"}}
`)

	err := RunCheck(context.Background(), split)
	require.ErrorIs(t, err, ErrInfeasible)
	require.ErrorIs(t, err, desk.ErrTeamSplit)
}

// TestRunCheck_Stdin reads the roster from the provided reader.
func TestRunCheck_Stdin(t *testing.T) {
	t.Parallel()

	opts := writeFixtures(t, "people: []\n")
	opts.RosterPath = StdinPath
	opts.In = strings.NewReader(twoTeamsRoster)

	require.NoError(t, RunCheck(context.Background(), opts))
	require.Contains(t, opts.Out.(*bytes.Buffer).String(), "Dave")
}

// TestRunCheck_MissingRoster wraps the repository error.
func TestRunCheck_MissingRoster(t *testing.T) {
	t.Parallel()

	opts := writeFixtures(t, "people: []\n")
	opts.RosterPath = filepath.Join(t.TempDir(), "missing.yaml")

	require.ErrorIs(t, RunCheck(context.Background(), opts), roster.ErrNotFound)
}

// TestRender prints every desk and the total.
func TestRender(t *testing.T) {
	t.Parallel()

	f := desk.NewFactory()
	people := []desk.Person{
		f.Person("team", desk.DogStatusAvoid),
		f.Person("team", desk.DogStatusLike),
		f.Unassigned(desk.DogStatusUnset),
		f.Unassigned(desk.DogStatusHave),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, people, layout.Evaluate(people)))

	out := buf.String()
	require.Contains(t, out, "Desk")
	require.Contains(t, out, "AVOID")
	require.Contains(t, out, "20")
	require.Contains(t, out, "Score: 20")
	require.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), len(people)+2)
}
