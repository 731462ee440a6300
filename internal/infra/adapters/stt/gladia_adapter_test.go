// File: internal/infra/adapters/stt/gladia_adapter_test.go
package stt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"voice-assistant-api/internal/config"
	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// gladiaStub fakes the three provider endpoints behind one test server.
type gladiaStub struct {
	t *testing.T

	uploadStatus int
	uploadBody   any

	submitStatus int
	submitBody   func(baseURL string) any

	pollResponses []any // consumed one per GET, last one repeats
	pollCount     int64
}

func (s *gladiaStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-gladia-key") == "" {
			s.t.Error("upload missing x-gladia-key header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			s.t.Errorf("upload is not multipart: %v", err)
		}
		writeStub(w, s.uploadStatus, s.uploadBody)
	})
	mux.HandleFunc("/transcribe", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AudioURL string `json:"audio_url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.AudioURL == "" {
			s.t.Error("submit body missing audio_url")
		}
		body := s.submitBody("http://" + r.Host)
		writeStub(w, s.submitStatus, body)
	})
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&s.pollCount, 1)
		idx := int(n) - 1
		if idx >= len(s.pollResponses) {
			idx = len(s.pollResponses) - 1
		}
		writeStub(w, http.StatusOK, s.pollResponses[idx])
	})
	return mux
}

func writeStub(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newStub(t *testing.T) *gladiaStub {
	return &gladiaStub{
		t:            t,
		uploadStatus: http.StatusOK,
		uploadBody:   map[string]string{"audio_url": "https://storage.example/audio.ogg"},
		submitStatus: http.StatusCreated,
		submitBody: func(base string) any {
			return map[string]string{"result_url": base + "/result"}
		},
	}
}

func newTestAdapter(t *testing.T, srv *httptest.Server, maxPolls int) *GladiaAdapter {
	t.Helper()
	g, err := NewGladiaAdapter(config.GladiaConfig{
		APIKey:           "test-key",
		UploadURL:        srv.URL + "/upload",
		TranscriptionURL: srv.URL + "/transcribe",
		PollInterval:     time.Millisecond,
		MaxPollAttempts:  maxPolls,
	}, testLogger())
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	g.sleep = noSleep
	return g
}

func doneResponse(transcript string) any {
	return map[string]any{
		"status": "done",
		"result": map[string]any{
			"transcription": map[string]any{"full_transcript": transcript},
		},
	}
}

func TestTranscribe_DoneOnThirdPoll(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{
		map[string]string{"status": "queued"},
		map[string]string{"status": "processing"},
		doneResponse("olá mundo"),
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	got, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "voice.ogg", "audio/ogg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "olá mundo" {
		t.Fatalf("transcript = %q", got)
	}
	if stub.pollCount != 3 {
		t.Fatalf("poll count = %d, want 3", stub.pollCount)
	}
}

func TestTranscribe_ProviderErrorStopsPolling(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{
		map[string]string{"status": "error", "error": "audio corrupted"},
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))

	var jobErr *domain.ProviderJobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("err = %v, want ProviderJobError", err)
	}
	if jobErr.Message != "audio corrupted" {
		t.Fatalf("message = %q", jobErr.Message)
	}
	if stub.pollCount != 1 {
		t.Fatalf("poll count = %d, want 1 (no polls after terminal error)", stub.pollCount)
	}
}

func TestTranscribe_ProviderErrorWithoutMessage(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{map[string]string{"status": "error"}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))

	var jobErr *domain.ProviderJobError
	if !errors.As(err, &jobErr) {
		t.Fatalf("err = %v, want ProviderJobError", err)
	}
	if jobErr.Message != "Unknown error" {
		t.Fatalf("message = %q, want default", jobErr.Message)
	}
}

func TestTranscribe_PollExhaustionTimesOut(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{map[string]string{"status": "processing"}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 5)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))
	if !errors.Is(err, domain.ErrPollTimeout) {
		t.Fatalf("err = %v, want ErrPollTimeout", err)
	}
	if stub.pollCount != 5 {
		t.Fatalf("poll count = %d, want 5", stub.pollCount)
	}
}

func TestTranscribe_EmptyAudioRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newStub(t).handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission(nil, "", ""))
	if !errors.Is(err, domain.ErrEmptyAudio) {
		t.Fatalf("err = %v, want ErrEmptyAudio", err)
	}
}

func TestTranscribe_UploadFailureSurfacesUpstreamError(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.uploadStatus = http.StatusServiceUnavailable
	stub.uploadBody = map[string]string{"message": "maintenance"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))

	var up *domain.UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if up.Stage != domain.StageUpload || up.Status != http.StatusServiceUnavailable {
		t.Fatalf("upstream = %+v", up)
	}
}

func TestTranscribe_MissingAudioURLIsMalformed(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.uploadBody = map[string]string{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))
	if !errors.Is(err, domain.ErrMalformedUploadResponse) {
		t.Fatalf("err = %v, want ErrMalformedUploadResponse", err)
	}
}

func TestTranscribe_MissingResultURLIsMalformed(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.submitBody = func(string) any { return map[string]string{} }
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))
	if !errors.Is(err, domain.ErrMalformedSubmitResponse) {
		t.Fatalf("err = %v, want ErrMalformedSubmitResponse", err)
	}
}

func TestTranscribe_DoneWithoutTranscript(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{doneResponse("")}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	_, err := g.Transcribe(context.Background(), model.NewAudioSubmission([]byte("xxx"), "", ""))
	if !errors.Is(err, domain.ErrTranscriptMissing) {
		t.Fatalf("err = %v, want ErrTranscriptMissing", err)
	}
}

func TestTranscribe_CancelledContextStopsPolling(t *testing.T) {
	t.Parallel()

	stub := newStub(t)
	stub.pollResponses = []any{map[string]string{"status": "processing"}}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := newTestAdapter(t, srv, 60)
	g.sleep = sleepContext
	g.pollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Transcribe(ctx, model.NewAudioSubmission([]byte("xxx"), "", ""))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
