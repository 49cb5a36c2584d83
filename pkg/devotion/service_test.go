package devotion

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/haivivi/devotional/pkg/genx"
)

type fakeGenerator struct {
	calls atomic.Int32

	mu     sync.Mutex
	inputs map[genx.Kind]string

	text map[genx.Kind]string
	blob *genx.Blob
	err  error
}

func (f *fakeGenerator) record(kind genx.Kind, input string) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inputs == nil {
		f.inputs = make(map[genx.Kind]string)
	}
	f.inputs[kind] = input
}

func (f *fakeGenerator) Text(_ context.Context, kind genx.Kind, input string) (string, error) {
	f.record(kind, input)
	if f.err != nil {
		return "", f.err
	}
	return f.text[kind], nil
}

func (f *fakeGenerator) Audio(_ context.Context, kind genx.Kind, input string) (*genx.Blob, error) {
	f.record(kind, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.blob == nil {
		return nil, &genx.ResponseError{Err: genx.ErrEmptyResponse, Kind: kind}
	}
	return f.blob, nil
}

func newTestService(gen Generator, gate Gate) *Service {
	return New(Config{
		Generator: gen,
		Gate:      gate,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestDailyStudy(t *testing.T) {
	gen := &fakeGenerator{text: map[genx.Kind]string{
		KindStudy: "Here is your devotional:\n{\"verse\":\"...\",\"reference\":\"John 3:16\",\"context\":\"...\",\"application\":\"...\",\"prayer\":\"...\",\"theme\":\"Love\"}",
	}}
	svc := newTestService(gen, NewFlagGate(true))

	study, err := svc.DailyStudy(context.Background(), "amor")
	if err != nil {
		t.Fatalf("DailyStudy error: %v", err)
	}
	if study.Reference != "John 3:16" {
		t.Errorf("Reference = %q, want %q", study.Reference, "John 3:16")
	}
	if gen.inputs[KindStudy] != "amor" {
		t.Errorf("theme passed = %q, want %q", gen.inputs[KindStudy], "amor")
	}
}

func TestDailyStudy_SchemaViolation(t *testing.T) {
	gen := &fakeGenerator{text: map[genx.Kind]string{KindStudy: `{"verse":"v"}`}}
	svc := newTestService(gen, NewFlagGate(true))

	study, err := svc.DailyStudy(context.Background(), "")
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("DailyStudy error = %v, want ErrSchemaViolation", err)
	}
	if study != nil {
		t.Errorf("DailyStudy returned placeholder content: %+v", study)
	}
}

func TestDailyQuiz(t *testing.T) {
	gen := &fakeGenerator{text: map[genx.Kind]string{
		KindQuiz: "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correctIndex\":2,\"explanation\":\"e\"}\n```",
	}}
	svc := newTestService(gen, NewFlagGate(true))

	quiz, err := svc.DailyQuiz(context.Background())
	if err != nil {
		t.Fatalf("DailyQuiz error: %v", err)
	}
	if quiz.Correct() != "c" {
		t.Errorf("Correct() = %q, want %q", quiz.Correct(), "c")
	}
}

func TestDailyQuiz_InvalidIndex(t *testing.T) {
	gen := &fakeGenerator{text: map[genx.Kind]string{
		KindQuiz: `{"question":"q","options":["a","b","c","d"],"correctIndex":7,"explanation":"e"}`,
	}}
	svc := newTestService(gen, NewFlagGate(true))

	if _, err := svc.DailyQuiz(context.Background()); !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("DailyQuiz error = %v, want ErrSchemaViolation", err)
	}
}

func TestSynthesizeSpeech(t *testing.T) {
	data := make([]byte, 8)
	for i, s := range []int16{0, 16384, -16384, 32767} {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	gen := &fakeGenerator{blob: &genx.Blob{MIMEType: "audio/L16;codec=pcm;rate=24000", Data: data}}
	svc := newTestService(gen, NewFlagGate(true))

	buf, err := svc.SynthesizeSpeech(context.Background(), "Paz")
	if err != nil {
		t.Fatalf("SynthesizeSpeech error: %v", err)
	}
	if buf.SampleRate != 24000 || buf.NumChannels() != 1 || buf.Frames() != 4 {
		t.Fatalf("buffer = rate %d, %d channels, %d frames", buf.SampleRate, buf.NumChannels(), buf.Frames())
	}
	if buf.Channels[0][1] != 0.5 || buf.Channels[0][2] != -0.5 {
		t.Errorf("samples = %v", buf.Channels[0])
	}
	if gen.inputs[KindSpeech] != "Paz" {
		t.Errorf("text passed = %q", gen.inputs[KindSpeech])
	}
}

func TestSynthesizeSpeech_LayoutFromMIME(t *testing.T) {
	gen := &fakeGenerator{blob: &genx.Blob{MIMEType: "audio/L16;rate=16000;channels=2", Data: make([]byte, 17)}}
	svc := newTestService(gen, NewFlagGate(true))

	buf, err := svc.SynthesizeSpeech(context.Background(), "x")
	if err != nil {
		t.Fatalf("SynthesizeSpeech error: %v", err)
	}
	if buf.SampleRate != 16000 || buf.NumChannels() != 2 || buf.Frames() != 4 {
		t.Errorf("buffer = rate %d, %d channels, %d frames", buf.SampleRate, buf.NumChannels(), buf.Frames())
	}
}

func TestSynthesizeSpeech_UnknownMIME(t *testing.T) {
	gen := &fakeGenerator{blob: &genx.Blob{MIMEType: "audio/ogg", Data: make([]byte, 6)}}
	svc := newTestService(gen, NewFlagGate(true))

	buf, err := svc.SynthesizeSpeech(context.Background(), "x")
	if err != nil {
		t.Fatalf("SynthesizeSpeech error: %v", err)
	}
	if buf.SampleRate != 24000 || buf.NumChannels() != 1 || buf.Frames() != 3 {
		t.Errorf("buffer = rate %d, %d channels, %d frames", buf.SampleRate, buf.NumChannels(), buf.Frames())
	}
}

func TestSynthesizeSpeech_EmptyResponse(t *testing.T) {
	svc := newTestService(&fakeGenerator{}, NewFlagGate(true))

	buf, err := svc.SynthesizeSpeech(context.Background(), "x")
	if !errors.Is(err, genx.ErrEmptyResponse) {
		t.Fatalf("SynthesizeSpeech error = %v, want ErrEmptyResponse", err)
	}
	if buf != nil {
		t.Error("SynthesizeSpeech returned a buffer on failure")
	}
}

func TestService_CredentialMissing(t *testing.T) {
	gen := &fakeGenerator{text: map[genx.Kind]string{KindStudy: validStudy}}
	gates := map[string]Gate{
		"nil gate":     nil,
		"cleared flag": NewFlagGate(false),
		"func":         GateFunc(func() bool { return false }),
	}

	for name, gate := range gates {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(gen, gate)
			ctx := context.Background()

			if _, err := svc.DailyStudy(ctx, ""); !errors.Is(err, ErrCredentialMissing) {
				t.Errorf("DailyStudy error = %v, want ErrCredentialMissing", err)
			}
			if _, err := svc.DailyQuiz(ctx); !errors.Is(err, ErrCredentialMissing) {
				t.Errorf("DailyQuiz error = %v, want ErrCredentialMissing", err)
			}
			if _, err := svc.SynthesizeSpeech(ctx, "x"); !errors.Is(err, ErrCredentialMissing) {
				t.Errorf("SynthesizeSpeech error = %v, want ErrCredentialMissing", err)
			}
		})
	}
	if n := gen.calls.Load(); n != 0 {
		t.Errorf("generator called %d times, want 0", n)
	}
}

func TestService_NoGenerator(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(nil, NewFlagGate(true))
	if _, err := svc.DailyStudy(ctx, ""); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("DailyStudy error = %v, want ErrNoGenerator", err)
	}
	if _, err := svc.DailyQuiz(ctx); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("DailyQuiz error = %v, want ErrNoGenerator", err)
	}
	if _, err := svc.SynthesizeSpeech(ctx, "x"); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("SynthesizeSpeech error = %v, want ErrNoGenerator", err)
	}

	// The gate is still checked first.
	svc = newTestService(nil, NewFlagGate(false))
	if _, err := svc.DailyStudy(ctx, ""); !errors.Is(err, ErrCredentialMissing) {
		t.Errorf("closed gate error = %v, want ErrCredentialMissing", err)
	}
}

func TestService_TransportErrorPropagates(t *testing.T) {
	backendErr := errors.New("API key not valid")
	gen := &fakeGenerator{err: &genx.TransportError{Kind: KindStudy, Model: DefaultTextModel, Err: backendErr}}
	svc := newTestService(gen, NewFlagGate(true))

	_, err := svc.DailyStudy(context.Background(), "")
	if !errors.Is(err, genx.ErrTransport) {
		t.Fatalf("DailyStudy error = %v, want ErrTransport", err)
	}
	if !errors.Is(err, backendErr) {
		t.Error("backend error should stay reachable")
	}
	if n := gen.calls.Load(); n != 1 {
		t.Errorf("generator called %d times, want a single attempt", n)
	}
}

func TestService_GateSelection(t *testing.T) {
	gate := NewFlagGate(false)
	gen := &fakeGenerator{text: map[genx.Kind]string{KindStudy: validStudy}}
	svc := newTestService(gen, gate)

	if _, err := svc.DailyStudy(context.Background(), ""); !errors.Is(err, ErrCredentialMissing) {
		t.Fatalf("DailyStudy error = %v, want ErrCredentialMissing", err)
	}
	gate.Select()
	if _, err := svc.DailyStudy(context.Background(), ""); err != nil {
		t.Fatalf("DailyStudy after Select: %v", err)
	}
	gate.Clear()
	if gate.HasSelectedCredential() {
		t.Error("Clear did not reset the gate")
	}
}

func TestService_Concurrent(t *testing.T) {
	gen := &fakeGenerator{
		text: map[genx.Kind]string{
			KindStudy: validStudy,
			KindQuiz:  `{"question":"q","options":["a","b","c","d"],"correctIndex":1,"explanation":"e"}`,
		},
		blob: &genx.Blob{Data: make([]byte, 480)},
	}
	svc := newTestService(gen, NewFlagGate(true))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for range 10 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := svc.DailyStudy(ctx, "")
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.DailyQuiz(ctx)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := svc.SynthesizeSpeech(ctx, "x")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent call failed: %v", err)
		}
	}
}

func TestSpeechText(t *testing.T) {
	s := &Study{Verse: "O Senhor é o meu pastor", Application: "Confie hoje"}
	if got := SpeechText(s); got != "O Senhor é o meu pastor. Confie hoje" {
		t.Errorf("SpeechText = %q", got)
	}
}
