package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// speakRequest is the request file accepted by 'speak -f'.
type speakRequest struct {
	Text  string `json:"text" yaml:"text"`
	Voice string `json:"voice,omitempty" yaml:"voice,omitempty"`
	Rate  int    `json:"rate,omitempty" yaml:"rate,omitempty"`
}

var (
	speakVoice   string
	speakRate    int
	speakPayload string
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Narrate text to a WAV file",
	Long: `Narrate text with Gemini speech and write it as WAV.

Text comes from the arguments or from a request file (-f, '-' for stdin).

Example request file (speak.yaml):
  text: O Senhor é o meu pastor; nada me faltará.
  voice: Kore
  rate: 16000

Examples:
  devotional speak -o verse.wav "O Senhor é o meu pastor"
  devotional speak -f speak.yaml -o verse.wav --json
  devotional speak -o verse.wav --payload verse.json "Paz"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req speakRequest
		if inputFile != "" {
			if err := loadRequest(inputFile, &req); err != nil {
				return err
			}
		}
		if len(args) > 0 {
			req.Text = strings.Join(args, " ")
		}
		if strings.TrimSpace(req.Text) == "" {
			return fmt.Errorf("text is required, pass it as arguments or use -f")
		}
		if speakVoice != "" {
			req.Voice = speakVoice
		}
		if speakRate > 0 {
			req.Rate = speakRate
		}
		if outputFile == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		printVerbose("Text length: %d characters", len(req.Text))

		svc, timeout, err := newService(cmd.Context(), serviceOptions{voice: req.Voice})
		if err != nil {
			return err
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		buf, err := svc.SynthesizeSpeech(reqCtx, req.Text)
		if err != nil {
			return explain(fmt.Errorf("speech synthesis failed: %w", err))
		}
		if speakPayload != "" {
			if err := savePayload(buf, speakPayload); err != nil {
				return err
			}
			printVerbose("Payload: %s", speakPayload)
		}
		res, err := writeWAV(buf, outputFile, req.Rate)
		if err != nil {
			return err
		}
		return printAudio(res)
	},
}

func init() {
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "prebuilt voice (default: context voice or Kore)")
	speakCmd.Flags().IntVar(&speakRate, "rate", 0, "resample to this rate in Hz")
	speakCmd.Flags().StringVar(&speakPayload, "payload", "", "also save the unresampled PCM as a JSON payload file")
}
