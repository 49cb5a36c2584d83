package devotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/haivivi/devotional/pkg/audio/pcm"
	"github.com/haivivi/devotional/pkg/genx"
)

var (
	// ErrCredentialMissing is returned before any request is issued when
	// the gate reports no selected credential.
	ErrCredentialMissing = errors.New("devotion: no credential selected")

	// ErrSchemaViolation is matched by every *SchemaError.
	ErrSchemaViolation = errors.New("devotion: schema violation")

	// ErrNoGenerator is returned when a request passes the gate but the
	// Service was built without a Generator.
	ErrNoGenerator = errors.New("devotion: no generator configured")
)

// Generator issues single requests from a request table. *genx.Client
// implements it.
type Generator interface {
	Text(ctx context.Context, kind genx.Kind, input string) (string, error)
	Audio(ctx context.Context, kind genx.Kind, input string) (*genx.Blob, error)
}

var _ Generator = (*genx.Client)(nil)

// Config configures a Service.
type Config struct {
	// Generator talks to the generation backend. Required for any request
	// that passes the gate.
	Generator Generator

	// Gate is consulted before every request. Required.
	Gate Gate

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// Service produces validated devotional content. It holds no per-call
// state and is safe for concurrent use.
type Service struct {
	gen    Generator
	gate   Gate
	logger *slog.Logger
}

// New creates a new Service.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gen:    cfg.Generator,
		gate:   cfg.Gate,
		logger: logger,
	}
}

// DailyStudy fetches a study, optionally on the given theme.
func (s *Service) DailyStudy(ctx context.Context, theme string) (*Study, error) {
	log, err := s.begin(ctx, KindStudy)
	if err != nil {
		return nil, err
	}
	text, err := s.gen.Text(ctx, KindStudy, theme)
	if err != nil {
		log.ErrorContext(ctx, "fetch study failed", "theme", theme, "error", err)
		return nil, err
	}
	study, err := ParseStudy(text)
	if err != nil {
		log.ErrorContext(ctx, "invalid study response", "error", err)
		return nil, err
	}
	log.InfoContext(ctx, "study fetched", "reference", study.Reference, "theme", study.Theme)
	return study, nil
}

// DailyQuiz fetches one quiz question.
func (s *Service) DailyQuiz(ctx context.Context) (*Quiz, error) {
	log, err := s.begin(ctx, KindQuiz)
	if err != nil {
		return nil, err
	}
	text, err := s.gen.Text(ctx, KindQuiz, "")
	if err != nil {
		log.ErrorContext(ctx, "fetch quiz failed", "error", err)
		return nil, err
	}
	quiz, err := ParseQuiz(text)
	if err != nil {
		log.ErrorContext(ctx, "invalid quiz response", "error", err)
		return nil, err
	}
	log.InfoContext(ctx, "quiz fetched")
	return quiz, nil
}

// SynthesizeSpeech narrates text and decodes the returned PCM. The layout is
// taken from the payload MIME type when it names one and is mono 24 kHz
// otherwise.
func (s *Service) SynthesizeSpeech(ctx context.Context, text string) (*pcm.Buffer, error) {
	log, err := s.begin(ctx, KindSpeech)
	if err != nil {
		return nil, err
	}
	blob, err := s.gen.Audio(ctx, KindSpeech, text)
	if err != nil {
		log.ErrorContext(ctx, "synthesize speech failed", "error", err)
		return nil, err
	}
	var buf *pcm.Buffer
	if rate, channels, perr := pcm.ParseMIME(blob.MIMEType); perr != nil {
		log.WarnContext(ctx, "unrecognized audio mime type, using default layout", "mime", blob.MIMEType, "error", perr)
		buf, err = pcm.SpeechFormat.Decode(blob.Data)
	} else {
		buf, err = pcm.Decode(blob.Data, channels, rate)
	}
	if err != nil {
		return nil, fmt.Errorf("devotion: decode speech: %w", err)
	}
	if rem := len(blob.Data) % (2 * buf.NumChannels()); rem != 0 {
		log.WarnContext(ctx, "dropped trailing partial audio frame", "bytes", len(blob.Data), "dropped", rem)
	}
	log.InfoContext(ctx, "speech synthesized", "bytes", len(blob.Data), "format", buf.MIMEType(), "duration", buf.Duration())
	return buf, nil
}

// begin checks the gate and returns a logger tagged with a request id.
func (s *Service) begin(ctx context.Context, kind genx.Kind) (*slog.Logger, error) {
	if s.gate == nil || !s.gate.HasSelectedCredential() {
		s.logger.WarnContext(ctx, "no credential selected", "kind", kind)
		return nil, ErrCredentialMissing
	}
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	log := s.logger.With("kind", kind, "request_id", uuid.NewString())
	log.DebugContext(ctx, "request started")
	return log, nil
}

// SpeechText returns the narration for a study: its verse followed by its
// application.
func SpeechText(s *Study) string {
	return s.Verse + ". " + s.Application
}
