package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/infra/logging"
	"voice-assistant-api/internal/usecase"
)

// maxAudioBytes caps uploads at 25 MiB, generous for voice notes.
const maxAudioBytes = 25 << 20

type processAudioResponse struct {
	Success            bool   `json:"success"`
	UserID             string `json:"user_id"`
	SubscriptionStatus string `json:"subscription_status"`
	Transcription      string `json:"transcription"`
	Response           string `json:"response"`
	ContextUsed        string `json:"context_used"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "voice-assistant-api",
		"status":  "online",
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) processAudioHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ClaimsFrom(ctx)
	l := logging.With(logging.WithUserID(ctx, claims.Subject), s.log)

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo multipart inválido")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo de áudio ausente")
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if mediaType != "" && !strings.HasPrefix(mediaType, "audio/") {
		writeError(w, http.StatusBadRequest, "O arquivo enviado não é um áudio")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Falha ao ler o arquivo de áudio")
		return
	}

	result, err := s.pipeline.Process(ctx, usecase.ProcessRequest{
		Audio:       model.NewAudioSubmission(data, header.Filename, mediaType),
		UserContext: r.FormValue("context_text"),
		UserID:      claims.Subject,
	})
	if err != nil {
		l.Error().Err(err).Msg("pipeline failed")
		status, detail := mapPipelineError(err)
		writeError(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, processAudioResponse{
		Success:            true,
		UserID:             result.UserID,
		SubscriptionStatus: result.SubscriptionStatus,
		Transcription:      result.Transcript,
		Response:           result.Answer,
		ContextUsed:        string(result.ContextUsed),
	})
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ClaimsFrom(ctx)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := s.history.ListByUser(ctx, claims.Subject, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao consultar o histórico")
		return
	}

	type historyItem struct {
		ID          string `json:"id"`
		Transcript  string `json:"transcript"`
		Answer      string `json:"answer"`
		ContextUsed string `json:"context_used"`
		CreatedAt   string `json:"created_at"`
	}
	out := make([]historyItem, 0, len(items))
	for _, it := range items {
		out = append(out, historyItem{
			ID:          it.ID,
			Transcript:  it.Transcript,
			Answer:      it.Answer,
			ContextUsed: string(it.ContextUsed),
			CreatedAt:   it.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

// mapPipelineError translates domain failures into HTTP semantics: caller
// mistakes are 4xx, provider failures are 502, poll exhaustion is 504.
func mapPipelineError(err error) (int, string) {
	var up *domain.UpstreamError
	var jobErr *domain.ProviderJobError

	switch {
	case errors.Is(err, domain.ErrEmptyAudio), errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "Arquivo de áudio vazio ou inválido"
	case errors.Is(err, domain.ErrSubscriptionInactive):
		return http.StatusForbidden, "Assinatura inativa ou expirada"
	case errors.Is(err, domain.ErrPollTimeout):
		return http.StatusGatewayTimeout, "A transcrição excedeu o tempo limite"
	case errors.As(err, &up):
		return http.StatusBadGateway, "Falha no serviço externo: " + string(up.Stage)
	case errors.As(err, &jobErr):
		return http.StatusBadGateway, "A transcrição falhou: " + jobErr.Message
	case errors.Is(err, domain.ErrMalformedUploadResponse),
		errors.Is(err, domain.ErrMalformedSubmitResponse),
		errors.Is(err, domain.ErrTranscriptMissing),
		errors.Is(err, domain.ErrMalformedLLMResponse):
		return http.StatusBadGateway, "Resposta inesperada do serviço externo"
	default:
		return http.StatusInternalServerError, "Erro interno ao processar o áudio"
	}
}
