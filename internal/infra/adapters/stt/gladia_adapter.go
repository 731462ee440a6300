// File: internal/infra/adapters/stt/gladia_adapter.go
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/rs/zerolog"

	"voice-assistant-api/internal/config"
	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/adapter"
	"voice-assistant-api/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.TranscriptionAdapter = (*GladiaAdapter)(nil)

// sleepFunc suspends until the duration elapses or ctx is cancelled.
// Injectable so tests can run the poll loop without wall-clock delay.
type sleepFunc func(ctx context.Context, d time.Duration) error

// GladiaAdapter drives the Gladia v2 pre-recorded API through
// upload -> submit -> poll-until-terminal. Upload and submit are one-shot
// calls surfaced immediately on failure; only job completion is polled.
type GladiaAdapter struct {
	apiKey          string
	uploadURL       string
	transcribeURL   string
	pollInterval    time.Duration
	maxPollAttempts int
	client          *http.Client
	sleep           sleepFunc
	log             *zerolog.Logger
}

func NewGladiaAdapter(cfg config.GladiaConfig, logger *zerolog.Logger) (*GladiaAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gladia api key empty")
	}
	uploadURL := cfg.UploadURL
	if uploadURL == "" {
		uploadURL = "https://api.gladia.io/v2/upload"
	}
	transcribeURL := cfg.TranscriptionURL
	if transcribeURL == "" {
		transcribeURL = "https://api.gladia.io/v2/pre-recorded"
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	maxPollAttempts := cfg.MaxPollAttempts
	if maxPollAttempts <= 0 {
		maxPollAttempts = 60
	}
	return &GladiaAdapter{
		apiKey:          cfg.APIKey,
		uploadURL:       uploadURL,
		transcribeURL:   transcribeURL,
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
		client:          &http.Client{Timeout: 2 * time.Minute},
		sleep:           sleepContext,
		log:             logger,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (g *GladiaAdapter) Transcribe(ctx context.Context, audio *model.AudioSubmission) (string, error) {
	if audio == nil || audio.Empty() {
		return "", domain.ErrEmptyAudio
	}

	start := time.Now()
	job := model.NewTranscriptionJob()

	audioURL, err := g.upload(ctx, audio)
	if err != nil {
		job.Status = model.TranscriptionError
		metrics.ObserveTranscription(string(job.Status), job.PollAttempts, msSince(start))
		return "", err
	}
	job.AudioURL = audioURL
	job.Status = model.TranscriptionSubmitted
	g.log.Info().Str("audio_url", audioURL).Msg("audio uploaded")

	resultURL, err := g.submit(ctx, audioURL)
	if err != nil {
		job.Status = model.TranscriptionError
		metrics.ObserveTranscription(string(job.Status), job.PollAttempts, msSince(start))
		return "", err
	}
	job.ResultURL = resultURL
	job.Status = model.TranscriptionPolling
	g.log.Info().Str("result_url", resultURL).Msg("transcription job submitted, polling")

	transcript, err := g.poll(ctx, job)
	switch {
	case err == nil:
		job.Status = model.TranscriptionDone
	case errors.Is(err, domain.ErrPollTimeout):
		job.Status = model.TranscriptionTimedOut
	default:
		job.Status = model.TranscriptionError
	}
	metrics.ObserveTranscription(string(job.Status), job.PollAttempts, msSince(start))
	if err != nil {
		return "", err
	}
	g.log.Info().Int("poll_attempts", job.PollAttempts).Msg("transcription completed")
	return transcript, nil
}

func (g *GladiaAdapter) upload(ctx context.Context, audio *model.AudioSubmission) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, audio.Filename))
	h.Set("Content-Type", audio.MediaType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("x-gladia-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{Stage: domain.StageUpload, Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		AudioURL string `json:"audio_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", domain.ErrMalformedUploadResponse
	}
	if payload.AudioURL == "" {
		return "", domain.ErrMalformedUploadResponse
	}
	return payload.AudioURL, nil
}

func (g *GladiaAdapter) submit(ctx context.Context, audioURL string) (string, error) {
	b, _ := json.Marshal(struct {
		AudioURL string `json:"audio_url"`
	}{AudioURL: audioURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.transcribeURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-gladia-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{Stage: domain.StageSubmit, Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		ResultURL string `json:"result_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", domain.ErrMalformedSubmitResponse
	}
	if payload.ResultURL == "" {
		return "", domain.ErrMalformedSubmitResponse
	}
	return payload.ResultURL, nil
}

func (g *GladiaAdapter) poll(ctx context.Context, job *model.TranscriptionJob) (string, error) {
	for job.PollAttempts < g.maxPollAttempts {
		if err := g.sleep(ctx, g.pollInterval); err != nil {
			return "", err
		}
		job.PollAttempts++

		result, err := g.fetchResult(ctx, job.ResultURL)
		if err != nil {
			return "", err
		}
		g.log.Debug().Str("status", result.Status).Int("attempt", job.PollAttempts).Msg("poll")

		switch result.Status {
		case "done":
			transcript := result.Result.Transcription.FullTranscript
			if transcript == "" {
				return "", domain.ErrTranscriptMissing
			}
			return transcript, nil
		case "error":
			msg := result.Error
			if msg == "" {
				msg = "Unknown error"
			}
			return "", &domain.ProviderJobError{Message: msg}
		}
		// any other status: job still in flight, keep polling
	}
	return "", domain.ErrPollTimeout
}

type pollResult struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Result struct {
		Transcription struct {
			FullTranscript string `json:"full_transcript"`
		} `json:"transcription"`
	} `json:"result"`
}

func (g *GladiaAdapter) fetchResult(ctx context.Context, resultURL string) (*pollResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-gladia-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.UpstreamError{Stage: domain.StagePoll, Status: resp.StatusCode, Body: string(body)}
	}

	var result pollResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func msSince(start time.Time) int {
	return int(time.Since(start) / time.Millisecond)
}
