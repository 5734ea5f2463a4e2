// Command primegen writes typenum IsPrime tests for every integer up to a bound.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkch/primegen"
	"github.com/mkch/primegen/internal/config"
	"github.com/mkch/primegen/internal/render"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitFailure     = 1
	exitConfigError = 2
)

var (
	// Global flags
	verbose    bool
	configPath string
	bound      int
	dialect    string
	output     string
	verify     bool

	logger *zap.Logger
)

// newRootCmd builds the command tree. Flags are bound to the globals above.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "primegen",
		Short: "Generate compile-time primality tests for typenum integers",
		Long: `primegen sieves every integer from 0 through the bound and writes a
test file asserting that <UN as IsPrime>::Output matches for each of them.

Settings come from --config (YAML) and are overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapConfig := zap.NewProductionConfig()
			if verbose {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runGenerate,
	}

	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Verify that FILE is up to date",
		Long: `Regenerates the test source with the current settings and compares it
byte for byte with FILE. Exits non-zero if they differ.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.IntVarP(&bound, "bound", "n", config.DefaultBound, "inclusive upper bound of the tested integers")
	flags.StringVar(&dialect, "dialect", string(render.Module), fmt.Sprintf("output dialect, one of %v", render.Dialects))
	flags.BoolVar(&verify, "verify", false, "cross-check the sieve with Miller-Rabin before writing")
	rootCmd.Flags().StringVarP(&output, "output", "o", config.Stdout, `output file, "-" for stdout`)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &config.Error{Field: "flags", Reason: err.Error()}
	})
	rootCmd.AddCommand(checkCmd)
	return rootCmd
}

// loadConfig reads --config and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (c config.Config, err error) {
	if c, err = config.Load(configPath); err != nil {
		return
	}
	flags := cmd.Flags()
	if flags.Changed("bound") {
		c.Bound = bound
	}
	if flags.Changed("dialect") {
		c.Dialect = render.Dialect(dialect)
	}
	if flags.Changed("output") {
		c.Output = output
	}
	if flags.Changed("verify") {
		c.Verify = verify
	}
	err = c.Validate()
	return
}

func options(c config.Config) primegen.Options {
	return primegen.Options{
		Bound:   c.Bound,
		Dialect: c.Dialect,
		License: c.License,
		Verify:  c.Verify,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Debug("generating",
		zap.Int("bound", c.Bound),
		zap.Stringer("dialect", c.Dialect),
		zap.String("output", c.Output),
		zap.Bool("verify", c.Verify))

	if c.Output == config.Stdout {
		return primegen.Generate(cmd.OutOrStdout(), options(c))
	}
	if err = primegen.GenerateFile(c.Output, options(c)); err != nil {
		return err
	}
	logger.Info("generated", zap.String("file", c.Output), zap.Int("bound", c.Bound))
	return nil
}

// errOutdated is returned by check when the file differs from fresh output.
var errOutdated = errors.New("generated file is out of date")

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	filename := args[0]
	got, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	want, err := primegen.GenerateString(options(c))
	if err != nil {
		return err
	}
	if line := firstDiff(want, string(got)); line != 0 {
		logger.Debug("mismatch", zap.String("file", filename), zap.Int("line", line))
		return fmt.Errorf("%w: %s differs at line %v", errOutdated, filename, line)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", filename)
	return nil
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, config.ErrInvalid):
		return exitConfigError
	default:
		return exitFailure
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "primegen:", err)
	}
	return exitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
