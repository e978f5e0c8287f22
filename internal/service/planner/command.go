package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/desk-planner/internal/config"
	"github.com/oshokin/desk-planner/internal/domain/desk"
	"github.com/oshokin/desk-planner/internal/layout"
	"github.com/oshokin/desk-planner/internal/logger"
	"github.com/oshokin/desk-planner/internal/repository/roster"
	"github.com/oshokin/desk-planner/internal/service/client"
	"github.com/oshokin/desk-planner/internal/service/local"
)

// Engine arranges and checks desk rows.
type Engine interface {
	CalculateDeskLayout(ctx context.Context, people []desk.Person) ([]desk.Person, error)
	CheckOrder(ctx context.Context, people []desk.Person) (int, error)
}

// Options controls a planner run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// RosterPath is the roster file, "-" reads standard input.
	RosterPath string
	// OutputPath, when set, receives the arranged roster.
	OutputPath string
	// ServerAddress sends the work to a desk server instead of running it in process.
	ServerAddress string
	// LogLevel overrides the level from the settings when set.
	LogLevel string
	// In replaces standard input.
	In io.Reader
	// Out replaces standard output.
	Out io.Writer
}

// StdinPath is the roster path that reads standard input.
const StdinPath = "-"

// ErrInfeasible is returned when a row breaks a seating constraint.
var ErrInfeasible = errors.New("desk layout is infeasible")

// RunArrange seats the roster, checks the row, prints it and optionally saves it.
// It returns ErrInfeasible wrapping the violation when no valid row was found.
func RunArrange(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "desk-planner")

	engine, people, closeEngine, err := prepare(ctx, opts)
	if err != nil {
		return err
	}

	defer closeEngine()

	arranged, err := engine.CalculateDeskLayout(ctx, people)
	if err != nil {
		return err
	}

	_, violation := engine.CheckOrder(ctx, arranged)
	if violation != nil && !errors.Is(violation, desk.ErrConstraintViolation) {
		return violation
	}

	if err = Render(output(opts), arranged, layout.Evaluate(arranged)); err != nil {
		return err
	}

	if opts.OutputPath != "" {
		if err = roster.NewFileRepository(opts.OutputPath).Save(ctx, arranged); err != nil {
			return fmt.Errorf("save arranged roster: %w", err)
		}

		logger.InfoKV(ctx, "Arranged roster saved", "path", opts.OutputPath)
	}

	if violation != nil {
		return fmt.Errorf("%w: %w", ErrInfeasible, violation)
	}

	return nil
}

// RunCheck evaluates the roster in the order given and prints the breakdown.
func RunCheck(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "desk-planner")

	engine, people, closeEngine, err := prepare(ctx, opts)
	if err != nil {
		return err
	}

	defer closeEngine()

	score, violation := engine.CheckOrder(ctx, people)
	if violation != nil && !errors.Is(violation, desk.ErrConstraintViolation) {
		return violation
	}

	if err = Render(output(opts), people, layout.Evaluate(people)); err != nil {
		return err
	}

	if violation != nil {
		return fmt.Errorf("%w: %w", ErrInfeasible, violation)
	}

	logger.DebugKV(ctx, "Roster checked", "score", score)

	return nil
}

// prepare loads settings and the roster and picks the engine.
func prepare(ctx context.Context, opts *Options) (Engine, []desk.Person, func(), error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load settings: %w", err)
	}

	logLevel := settings.LogLevel
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	if err = logger.SetLevelString(logLevel); err != nil {
		return nil, nil, nil, err
	}

	people, err := loadRoster(ctx, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.DebugKV(ctx, "Roster loaded", "path", opts.RosterPath, "people", len(people))

	if opts.ServerAddress == "" {
		return local.NewService(settings.ArrangerOptions()), people, func() {}, nil
	}

	remote, err := client.Dial(ctx, opts.ServerAddress, client.WithCallTimeout(settings.Timeout))
	if err != nil {
		return nil, nil, nil, err
	}

	closeRemote := func() {
		if closeErr := remote.Close(); closeErr != nil {
			logger.Warnf(ctx, "Failed to close connection: %v", closeErr)
		}
	}

	return remote, people, closeRemote, nil
}

// loadRoster reads the roster file or standard input.
func loadRoster(ctx context.Context, opts *Options) ([]desk.Person, error) {
	if opts.RosterPath == StdinPath {
		in := opts.In
		if in == nil {
			in = os.Stdin
		}

		return roster.ReadFrom(in)
	}

	people, err := roster.NewFileRepository(opts.RosterPath).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster %s: %w", opts.RosterPath, err)
	}

	return people, nil
}

func output(opts *Options) io.Writer {
	if opts.Out != nil {
		return opts.Out
	}

	return os.Stdout
}
