package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/devotional/pkg/audio/pcm"
	"github.com/haivivi/devotional/pkg/cli"
	"github.com/haivivi/devotional/pkg/encoding"
)

// audioPayload is the request file form read by 'audio decode' and written
// by 'speak --payload'.
type audioPayload struct {
	MIME string                 `json:"mime" yaml:"mime"`
	Data encoding.StdBase64Data `json:"data" yaml:"data"`
}

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Work with raw PCM payloads",
}

var (
	decodeMIME     string
	decodeChannels int
	decodeRate     int
	decodeResample int
	decodeRaw      bool
)

var audioDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode base64 16-bit PCM into a WAV file",
	Long: `Decode a base64 payload of 16-bit little-endian PCM and write it as WAV.

The layout comes from --mime when set, otherwise from --rate and --channels.
A .json or .yaml input is read as a payload file with "mime" and base64
"data" fields; its mime is used unless --mime is given. A trailing partial
frame is dropped.

Examples:
  devotional audio decode -f payload.b64 -o out.wav
  devotional audio decode -f payload.b64 --mime 'audio/L16;codec=pcm;rate=24000' -o out.wav
  devotional audio decode -f payload.json -o out.wav
  devotional audio decode -f capture.pcm --raw --channels 2 --rate 48000 -o out.wav --resample 16000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" {
			return fmt.Errorf("input file is required, use -f flag")
		}
		var (
			data []byte
			err  error
		)
		mime, raw := decodeMIME, decodeRaw
		if isPayloadFile(inputFile) {
			var p audioPayload
			if err := loadRequest(inputFile, &p); err != nil {
				return err
			}
			if mime == "" {
				mime = p.MIME
			}
			data, raw = p.Data, true
		} else if data, err = readInput(inputFile); err != nil {
			return err
		}

		rate, channels := decodeRate, decodeChannels
		if mime != "" {
			if rate, channels, err = pcm.ParseMIME(mime); err != nil {
				return err
			}
		}
		printVerbose("Layout: %d Hz, %d channel(s)", rate, channels)

		var buf *pcm.Buffer
		if raw {
			buf, err = pcm.Decode(data, channels, rate)
		} else {
			buf, err = pcm.DecodeBase64(string(data), channels, rate)
		}
		if err != nil {
			return err
		}

		res, err := writeWAV(buf, outputFile, decodeResample)
		if err != nil {
			return err
		}
		return printAudio(res)
	},
}

// savePayload writes buf as a JSON payload that 'audio decode' reads back.
func savePayload(buf *pcm.Buffer, path string) error {
	p := audioPayload{MIME: buf.MIMEType(), Data: buf.Interleave()}
	return cli.Output(p, cli.OutputOptions{Format: cli.FormatJSON, File: path})
}

func isPayloadFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func init() {
	audioDecodeCmd.Flags().StringVar(&decodeMIME, "mime", "", "payload MIME type, e.g. audio/L16;rate=24000")
	audioDecodeCmd.Flags().IntVar(&decodeChannels, "channels", pcm.SpeechFormat.Channels(), "channel count")
	audioDecodeCmd.Flags().IntVar(&decodeRate, "rate", pcm.SpeechFormat.SampleRate(), "sample rate in Hz")
	audioDecodeCmd.Flags().IntVar(&decodeResample, "resample", 0, "resample to this rate in Hz")
	audioDecodeCmd.Flags().BoolVar(&decodeRaw, "raw", false, "input is raw PCM bytes, not base64")

	audioCmd.AddCommand(audioDecodeCmd)
}
