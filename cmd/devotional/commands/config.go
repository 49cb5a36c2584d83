package commands

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/cli"
	"github.com/haivivi/devotional/pkg/devotion"
	"github.com/haivivi/devotional/pkg/genx"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage credentials and contexts",
	Long: `Manage the contexts stored in ~/.devotional/config.yaml.

A context is one Gemini credential plus its model, voice and timeout
overrides. Content commands run only while a context is selected, either
with 'devotional config use-context' or per call with -c.`,
}

// newContext holds the add-context flags.
var newContext struct {
	apiKey     string
	baseURL    string
	voice      string
	studyModel string
	quizModel  string
	ttsModel   string
	timeout    int
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Store a credential under a name",
	Long: `Store a credential under a name, replacing any context of that name.

A key starting with '$' is read from that environment variable on use.

Examples:
  devotional config add-context home --api-key '$GEMINI_API_KEY'
  devotional config add-context tts --api-key KEY --speech-model gemini-2.5-pro-preview-tts --default-voice Puck`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if newContext.apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}
		c := &cli.Context{
			APIKey:       newContext.apiKey,
			BaseURL:      newContext.baseURL,
			Timeout:      newContext.timeout,
			DefaultVoice: newContext.voice,
		}
		overrides := map[genx.Kind]string{
			devotion.KindStudy:  newContext.studyModel,
			devotion.KindQuiz:   newContext.quizModel,
			devotion.KindSpeech: newContext.ttsModel,
		}
		for kind, model := range overrides {
			if model == "" {
				continue
			}
			if c.Models == nil {
				c.Models = map[string]string{}
			}
			c.Models[string(kind)] = model
		}
		if err := getConfig().AddContext(args[0], c); err != nil {
			return err
		}
		cli.PrintSuccess("Context %q added successfully", args[0])
		return nil
	},
}

// namedContextCmd builds a command that acts on one named context and
// reports what it did.
func namedContextCmd(use, short string, act func(cfg *cli.Config, name string) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := act(getConfig(), args[0]); err != nil {
				return err
			}
			cli.PrintSuccess(done, args[0])
			return nil
		},
	}
}

var configDeleteContextCmd = namedContextCmd("delete-context", "Remove a stored context",
	(*cli.Config).DeleteContext, "Context %q deleted")

var configUseContextCmd = namedContextCmd("use-context", "Select the credential used for content requests",
	func(cfg *cli.Config, name string) error {
		if err := cfg.UseContext(name); err != nil {
			return err
		}
		if !(cli.ContextGate{Config: cfg}).HasSelectedCredential() {
			cli.PrintWarning("Context %q has no usable API key", name)
		}
		return nil
	}, "Switched to context %q")

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Print the selected context",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := getConfig().CurrentContext
		if name == "" {
			name = "No current context set"
		}
		fmt.Println(name)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "Show stored contexts, marking the selected one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		names := cfg.ListContexts()
		if len(names) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CURRENT\tNAME\tKEY\tVOICE\tENDPOINT")
		for _, name := range names {
			c := cfg.Contexts[name]
			mark := " "
			if name == cfg.CurrentContext {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, name,
				cli.MaskAPIKey(c.ResolvedAPIKey()),
				orDefault(c.DefaultVoice, devotion.DefaultVoice),
				orDefault(c.BaseURL, "(default)"))
		}
		return tw.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the configuration with keys masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		fmt.Printf("Config file: %s\nCurrent context: %s\n", cfg.Path(), orDefault(cfg.CurrentContext, "(none)"))
		for _, name := range cfg.ListContexts() {
			fmt.Printf("\n%s", describeContext(name, cfg.Contexts[name]))
		}
		return nil
	},
}

// describeContext renders one context for 'config view'. Keys given as
// $ENV references show the reference next to the masked value.
func describeContext(name string, c *cli.Context) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]\n", name)
	key := cli.MaskAPIKey(c.ResolvedAPIKey())
	if strings.HasPrefix(c.APIKey, "$") {
		key = c.APIKey + " -> " + key
	}
	fmt.Fprintf(&sb, "  API Key: %s\n", key)
	if c.BaseURL != "" {
		fmt.Fprintf(&sb, "  Base URL: %s\n", c.BaseURL)
	}
	if c.Timeout > 0 {
		fmt.Fprintf(&sb, "  Timeout: %ds\n", c.Timeout)
	}
	if c.DefaultVoice != "" {
		fmt.Fprintf(&sb, "  Voice: %s\n", c.DefaultVoice)
	}
	kinds := make([]string, 0, len(c.Models))
	for kind := range c.Models {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "  Model (%s): %s\n", kind, c.Models[kind])
	}
	return sb.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	f := configAddContextCmd.Flags()
	f.StringVar(&newContext.apiKey, "api-key", "", "Gemini API key or $ENV reference (required)")
	f.StringVar(&newContext.baseURL, "base-url", "", "API base URL")
	f.IntVar(&newContext.timeout, "timeout", 0, "request timeout in seconds")
	f.StringVar(&newContext.voice, "default-voice", "", "prebuilt speech voice")
	f.StringVar(&newContext.studyModel, "text-model", "", "model for daily studies")
	f.StringVar(&newContext.quizModel, "quiz-model", "", "model for quizzes")
	f.StringVar(&newContext.ttsModel, "speech-model", "", "model for speech")

	configCmd.AddCommand(
		configAddContextCmd,
		configDeleteContextCmd,
		configUseContextCmd,
		configGetContextCmd,
		configListContextsCmd,
		configViewCmd,
	)
}
