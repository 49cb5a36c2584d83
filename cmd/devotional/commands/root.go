package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/cli"
)

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	query       string
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devotional",
	Short: "Daily devotional content from Gemini",
	Long: `Devotional CLI - daily Bible studies, quizzes and narration.

Content is generated by Gemini:
  - Bible study of the day, optionally on a theme
  - Multiple-choice Bible quiz
  - Speech narration written to WAV
  - Favorites kept locally by study reference

Configuration is stored in ~/.devotional/ and supports multiple contexts,
similar to kubectl's context management. A context must be selected before
any content can be requested.

Examples:
  # Set up a credential and select it
  devotional config add-context home --api-key '$GEMINI_API_KEY'
  devotional config use-context home

  # Today's study on a theme, narrated
  devotional study --theme esperança --speak study.wav

  # Pipe output to another command
  devotional quiz --json --query '.options[.correctIndex]'
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.devotional/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().StringVarP(&query, "query", "q", "", "jq expression applied to the result")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(audioCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func initConfig() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	globalConfig, err = cli.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'devotional config use-context'")
		}
		return nil, err
	}

	return ctx, nil
}

// outputResult outputs the result using cli package. Results print as
// cards unless --json is set; a --query without --json prints raw values.
func outputResult(result any) error {
	format := cli.FormatCard
	switch {
	case outputJSON:
		format = cli.FormatJSON
	case query != "":
		format = cli.FormatRaw
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		Query:  query,
		File:   outputFile,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
