package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/cli"
	"github.com/haivivi/devotional/pkg/devotion"
)

var (
	studyTheme    string
	studyFavorite bool
	studySpeak    string
	studyRate     int
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Fetch the Bible study of the day",
	Long: `Fetch a daily Bible study: verse, reference, context, application,
prayer and theme.

Examples:
  devotional study
  devotional study --theme perdão --favorite
  devotional study --speak study.wav --rate 16000
  devotional study --json --query .reference`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, timeout, err := newService(cmd.Context(), serviceOptions{})
		if err != nil {
			return err
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		study, err := svc.DailyStudy(reqCtx, studyTheme)
		if err != nil {
			return explain(fmt.Errorf("study failed: %w", err))
		}

		view := &studyView{Study: study}
		if err := markFavorite(reqCtx, view); err != nil {
			return err
		}

		if studySpeak != "" {
			buf, err := svc.SynthesizeSpeech(reqCtx, devotion.SpeechText(study))
			if err != nil {
				return explain(fmt.Errorf("narration failed: %w", err))
			}
			res, err := writeWAV(buf, studySpeak, studyRate)
			if err != nil {
				return err
			}
			view.Narration = res.File
			printVerbose("Narration: %s, %s", res.Duration, res.Size)
		}

		return outputResult(view)
	},
}

// markFavorite toggles the study's reference when --favorite is set and
// records whether it is a favorite.
func markFavorite(ctx context.Context, view *studyView) error {
	fav, closeFav, err := openFavorites()
	if err != nil {
		return err
	}
	defer closeFav()

	if studyFavorite {
		view.Favorite, err = fav.Toggle(ctx, view.Reference)
		return err
	}
	view.Favorite, err = fav.Contains(ctx, view.Reference)
	return err
}

// studyView is a study as printed by the CLI.
type studyView struct {
	*devotion.Study `yaml:",inline"`
	Favorite        bool   `json:"favorite" yaml:"favorite"`
	Narration       string `json:"narration,omitempty" yaml:"narration,omitempty"`
}

func (v *studyView) Card() cli.Card {
	footer := "☆ not a favorite"
	if v.Favorite {
		footer = "★ favorite"
	}
	if v.Narration != "" {
		footer += " · narration: " + v.Narration
	}
	return cli.Card{
		Styles: cli.NewStyles(cli.DefaultTheme),
		Title:  v.Theme,
		Status: v.Reference,
		Sections: []cli.Section{
			{Label: "Versículo", Text: v.Verse},
			{Label: "Contexto", Text: v.Context},
			{Label: "Aplicação", Text: v.Application},
			{Label: "Oração", Text: v.Prayer},
		},
		Footer: footer,
	}
}

func init() {
	studyCmd.Flags().StringVarP(&studyTheme, "theme", "t", "", "study theme (default: a general daily study)")
	studyCmd.Flags().BoolVar(&studyFavorite, "favorite", false, "toggle the study's reference in favorites")
	studyCmd.Flags().StringVar(&studySpeak, "speak", "", "narrate the study to this WAV file")
	studyCmd.Flags().IntVar(&studyRate, "rate", 0, "resample the narration to this rate in Hz")
}
