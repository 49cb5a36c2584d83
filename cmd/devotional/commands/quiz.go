package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/cli"
	"github.com/haivivi/devotional/pkg/devotion"
)

var quizReveal bool

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Fetch a Bible quiz question",
	Long: `Fetch a multiple-choice Bible quiz question with four options.

The answer is hidden in the card unless --reveal is set. JSON output always
carries correctIndex.

Examples:
  devotional quiz
  devotional quiz --reveal
  devotional quiz --json --query '.options[.correctIndex]'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, timeout, err := newService(cmd.Context(), serviceOptions{})
		if err != nil {
			return err
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		quiz, err := svc.DailyQuiz(reqCtx)
		if err != nil {
			return explain(fmt.Errorf("quiz failed: %w", err))
		}
		return outputResult(&quizView{Quiz: quiz, reveal: quizReveal})
	},
}

// quizView is a quiz as printed by the CLI.
type quizView struct {
	*devotion.Quiz `yaml:",inline"`
	reveal         bool
}

func (v *quizView) Card() cli.Card {
	var opts strings.Builder
	for i, o := range v.Options {
		mark := " "
		if v.reveal && i == v.CorrectIndex {
			mark = "✓"
		}
		fmt.Fprintf(&opts, "%s %c) %s\n", mark, 'A'+i, o)
	}
	sections := []cli.Section{
		{Label: "Pergunta", Text: v.Question},
		{Label: "Opções", Text: strings.TrimSuffix(opts.String(), "\n")},
	}
	footer := "answer hidden, use --reveal"
	if v.reveal {
		sections = append(sections, cli.Section{Label: "Explicação", Text: v.Explanation})
		footer = ""
	}
	return cli.Card{
		Styles:   cli.NewStyles(cli.DefaultTheme),
		Title:    "Quiz bíblico",
		Sections: sections,
		Footer:   footer,
	}
}

func init() {
	quizCmd.Flags().BoolVar(&quizReveal, "reveal", false, "show the correct answer and explanation")
}
