package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/desk-planner/internal/config"
	"github.com/oshokin/desk-planner/internal/logger"
	"github.com/oshokin/desk-planner/internal/service/planner"
	"github.com/oshokin/desk-planner/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// serverAddress sends the work to a desk server when set.
	serverAddress string
	// logLevel overrides the level from the configuration file.
	logLevel string
	// outputPath receives the arranged roster.
	outputPath string

	// rootCmd represents the base command of the planner.
	rootCmd = &cobra.Command{
		Use:   "desk-planner",
		Short: "Seat teams along a row of desks, keeping dog owners away from people who avoid dogs.",
		Long: `Arranges people along a single row of adjacent desks.

Every team sits together. People who avoid dogs never sit directly next to a dog owner
and are seated as far from owners as possible; dog owners are spread apart.
The row score counts ten per free desk between each avoider and the nearest owner
plus one per free desk between each owner and the nearest other owner. Higher is better.

Rosters are YAML or JSON files; pass "-" to read standard input.`,
		SilenceUsage: true,
	}

	// arrangeCmd seats a roster.
	arrangeCmd = &cobra.Command{
		Use:   "arrange <roster>",
		Short: "Arrange a roster and print the row.",
		Long: `Arranges the roster, prints the row with each desk's score and the total.

Exits with a non-zero status when the roster cannot be seated without an avoider
next to a dog owner, for example a team made only of one owner and one avoider.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return planner.RunArrange(ctx, options(cmd, args[0]))
		},
	}

	// checkCmd evaluates a roster as given.
	checkCmd = &cobra.Command{
		Use:   "check <roster>",
		Short: "Check a roster's order and print its score.",
		Long:  "Checks that the roster, in the order given, keeps teams together and avoiders away from dog owners.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return planner.RunCheck(ctx, options(cmd, args[0]))
		},
	}
)

// options collects the flag values for a planner run.
func options(cmd *cobra.Command, rosterPath string) *planner.Options {
	return &planner.Options{
		ConfigPath:    configPath,
		RosterPath:    rosterPath,
		OutputPath:    outputPath,
		ServerAddress: serverAddress,
		LogLevel:      logLevel,
		In:            cmd.InOrStdin(),
		Out:           cmd.OutOrStdout(),
	}
}

// Execute runs the desk-planner CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&serverAddress, "server", "s", "", "desk server address, runs in process when empty")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")

	arrangeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the arranged roster to this file")

	rootCmd.AddCommand(arrangeCmd, checkCmd)
}
