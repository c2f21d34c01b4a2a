package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lispmeister/hashline/internal/compare"
	"github.com/lispmeister/hashline/internal/report"
	"github.com/lispmeister/hashline/internal/results"
	"github.com/lispmeister/hashline/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

// rootCmd is the comparison itself: benchcmp <baseline.json> <current.json>.
var rootCmd = &cobra.Command{
	Use:   "benchcmp <baseline.json> <current.json>",
	Short: "Compare two hashline benchmark result sets",
	Long: `benchcmp compares a baseline benchmark run against a current one and
reports the percentage change per benchmark configuration. Any configuration
slower than the baseline by more than the threshold is flagged as a
regression and the command exits non-zero, so it can gate CI.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runCompare,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.benchcmp.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.Flags().Float64("threshold", 15.0, "Regression threshold percentage")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("threshold", rootCmd.Flags().Lookup("threshold"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// explicit .env loading; missing file is fine
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".benchcmp")
	}

	viper.SetEnvPrefix("HASHLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("threshold", 15.0)
	viper.SetDefault("no_color", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: cannot read config file %s: %v\n", cfgFile, err)
		}
	}

	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}

func runCompare(cmd *cobra.Command, args []string) error {
	threshold := viper.GetFloat64("threshold")
	if threshold <= 0 {
		return fmt.Errorf("threshold must be a positive percentage, got %v", threshold)
	}

	baseMap, baseSet, err := results.Load(args[0])
	if err != nil {
		return err
	}
	slog.Debug("loaded baseline", "path", args[0], "results", len(baseSet.Results))

	currMap, currSet, err := results.Load(args[1])
	if err != nil {
		return err
	}
	slog.Debug("loaded current", "path", args[1], "results", len(currSet.Results))

	outcome, err := compare.Compare(baseMap, currMap, threshold)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(colorEnabled())
	renderer.RenderComparison(cmd.OutOrStdout(), baseSet, currSet, outcome)

	if len(outcome.Regressions) > 0 {
		slog.Debug("regressions detected", "count", len(outcome.Regressions), "threshold", threshold)
		exit(1)
	}
	return nil
}

// colorEnabled honors --no-color, NO_COLOR, and non-TTY stdout, in that
// order. Piped output is always plain text.
func colorEnabled() bool {
	if viper.GetBool("no_color") || termenv.EnvNoColor() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
