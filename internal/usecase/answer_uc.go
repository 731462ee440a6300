// File: internal/usecase/answer_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/adapter"
	"voice-assistant-api/internal/infra/metrics"
)

// Compile-time check
var _ AnswerUseCase = (*answerUC)(nil)

// AnswerUseCase generates a grounded answer from a transcript and the
// resolved context.
type AnswerUseCase interface {
	Generate(ctx context.Context, transcript string, rc model.ResolvedContext) (string, error)
}

type answerUC struct {
	ai        adapter.AIServiceAdapter
	modelName string
	log       *zerolog.Logger
}

func NewAnswerUseCase(ai adapter.AIServiceAdapter, modelName string, log *zerolog.Logger) *answerUC {
	return &answerUC{ai: ai, modelName: modelName, log: log}
}

const personaPrompt = "Você é um assistente de voz inteligente, " +
	"especializado em fornecer respostas precisas e úteis.\n\n" +
	"INSTRUÇÕES DE COMPORTAMENTO:\n" +
	"- Seja sempre educado, prestativo e profissional\n" +
	"- Responda de forma clara, concisa e objetiva\n" +
	"- Use linguagem natural e acessível\n" +
	"- Mantenha um tom amigável mas profissional\n" +
	"- Se não souber algo, seja honesto e não invente informações"

func contextSourceLabel(source model.ContextSource) string {
	switch source {
	case model.SourceUserContext:
		return "Contexto Personalizado do Usuário"
	case model.SourceRetrievedContext:
		return "Base de Conhecimento Interna (RAG)"
	default:
		return "Sem Contexto Específico"
	}
}

func (a *answerUC) Generate(ctx context.Context, transcript string, rc model.ResolvedContext) (string, error) {
	contextPrompt := fmt.Sprintf(
		"CONTEXTO ADICIONAL (Fonte: %s):\n%s\n\n"+
			"COMO USAR O CONTEXTO:\n"+
			"- Se a pergunta do usuário estiver relacionada ao contexto acima, use essas informações para fundamentar sua resposta\n"+
			"- Se a pergunta NÃO estiver relacionada ao contexto, responda com base em seu conhecimento geral\n"+
			"- Priorize sempre a precisão e relevância da informação",
		contextSourceLabel(rc.Source), rc.Text,
	)

	messages := []adapter.Message{
		{Role: "system", Content: personaPrompt},
		{Role: "system", Content: contextPrompt},
		{Role: "user", Content: transcript},
	}

	start := time.Now()
	answer, usage, err := a.ai.ChatWithUsage(ctx, a.modelName, messages)
	latency := time.Since(start)
	if err != nil {
		metrics.ObserveChatUsage(a.modelName, 0, 0, 0, int(latency/time.Millisecond), false)
		return "", err
	}
	metrics.ObserveChatUsage(a.modelName, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens,
		int(latency/time.Millisecond), true)
	a.log.Debug().Str("model", a.modelName).Dur("duration", latency).Msg("answer generated")
	return answer, nil
}
