package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/haivivi/devotional/pkg/audio/pcm"
	"github.com/haivivi/devotional/pkg/cli"
	"github.com/haivivi/devotional/pkg/devotion"
	"github.com/haivivi/devotional/pkg/favorites"
	"github.com/haivivi/devotional/pkg/genx"
	"github.com/haivivi/devotional/pkg/kv"
)

const defaultTimeout = 120 * time.Second

// serviceOptions adjusts the request table for one invocation.
type serviceOptions struct {
	voice string
}

// newService builds the content service for the selected context. When no
// credential is selected the service is still returned so that every
// operation reports devotion.ErrCredentialMissing.
func newService(ctx context.Context, opts serviceOptions) (*devotion.Service, time.Duration, error) {
	cfg := getConfig()
	gate := cli.ContextGate{Config: cfg, Name: contextName}
	svc := devotion.Config{Gate: gate, Logger: slog.Default()}
	timeout := defaultTimeout

	if gate.HasSelectedCredential() {
		c, err := getContext()
		if err != nil {
			return nil, 0, err
		}
		printVerbose("Using context: %s", c.Name)
		if c.Timeout > 0 {
			timeout = time.Duration(c.Timeout) * time.Second
		}

		requests := devotion.DefaultRequests()
		for kind, req := range requests {
			if model := c.Model(string(kind)); model != "" {
				req.Model = model
			}
			if req.Output == genx.OutputAudio {
				if c.DefaultVoice != "" {
					req.Voice = c.DefaultVoice
				}
				if opts.voice != "" {
					req.Voice = opts.voice
				}
			}
			printVerbose("%s: model=%s", kind, req.Model)
		}

		client, err := genx.NewClient(ctx, c.ResolvedAPIKey(), c.BaseURL, requests)
		if err != nil {
			return nil, 0, err
		}
		client.Logger = slog.Default()
		svc.Generator = client
	}

	return devotion.New(svc), timeout, nil
}

// explain adds remediation hints to content errors.
func explain(err error) error {
	switch {
	case errors.Is(err, devotion.ErrCredentialMissing):
		return fmt.Errorf("%w: select a credential with 'devotional config use-context <name>'", err)
	case errors.Is(err, devotion.ErrSchemaViolation),
		errors.Is(err, genx.ErrMalformedResponse),
		errors.Is(err, genx.ErrEmptyResponse):
		return fmt.Errorf("%w (the response was unusable, try again)", err)
	default:
		return err
	}
}

// openFavorites opens the on-disk favorites store. The returned function
// closes it.
func openFavorites() (*favorites.Store, func() error, error) {
	paths, err := cli.NewPaths()
	if err != nil {
		return nil, nil, err
	}
	if err := paths.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := kv.NewBadger(kv.BadgerOptions{
		Dir:    paths.FavoritesDir(),
		Logger: slog.Default(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open favorites: %w", err)
	}
	return favorites.New(store, slog.Default()), store.Close, nil
}

// audioResult summarizes a written WAV file.
type audioResult struct {
	File       string `json:"file" yaml:"file"`
	Format     string `json:"format" yaml:"format"`
	SampleRate int    `json:"sample_rate" yaml:"sample_rate"`
	Channels   int    `json:"channels" yaml:"channels"`
	Frames     int    `json:"frames" yaml:"frames"`
	Duration   string `json:"duration" yaml:"duration"`
	Size       string `json:"size" yaml:"size"`
}

// writeWAV resamples buf when rate is set and writes it to path as WAV.
func writeWAV(buf *pcm.Buffer, path string, rate int) (*audioResult, error) {
	if path == "" {
		return nil, fmt.Errorf("output file is required for audio, use -o flag")
	}
	if rate > 0 && rate != buf.SampleRate {
		printVerbose("Resampling %d Hz -> %d Hz", buf.SampleRate, rate)
		var err error
		if buf, err = buf.Resample(rate); err != nil {
			return nil, err
		}
	}

	var wav bytes.Buffer
	if err := buf.WriteWAV(&wav); err != nil {
		return nil, err
	}
	if err := cli.OutputBytes(wav.Bytes(), path); err != nil {
		return nil, err
	}
	return &audioResult{
		File:       path,
		Format:     buf.MIMEType(),
		SampleRate: buf.SampleRate,
		Channels:   buf.NumChannels(),
		Frames:     buf.Frames(),
		Duration:   cli.FormatDuration(buf.Duration()),
		Size:       cli.FormatBytes(int64(wav.Len())),
	}, nil
}

// printAudio reports a written file without touching -o, which names the
// audio itself.
func printAudio(res *audioResult) error {
	format := cli.FormatYAML
	if outputJSON {
		format = cli.FormatJSON
	}
	return cli.Output(res, cli.OutputOptions{Format: format, Query: query, Writer: os.Stdout})
}

// loadRequest loads a request from a YAML or JSON file
func loadRequest(path string, v any) error {
	return cli.LoadRequest(path, v)
}
