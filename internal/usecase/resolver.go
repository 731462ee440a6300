// File: internal/usecase/resolver.go
package usecase

import (
	"strings"

	"voice-assistant-api/internal/domain/model"
)

// NoContextFallback is the sentinel handed to the LLM when neither
// candidate carries text.
const NoContextFallback = "Nenhuma informação adicional disponível."

// ResolveContext picks the final grounding context by strict priority:
// user-supplied context wins outright, the retrieved context is second,
// and the fallback sentinel closes the gap. The two candidates are never
// blended. Pure function, no external calls.
func ResolveContext(userContext, retrievedContext string) model.ResolvedContext {
	if t := strings.TrimSpace(userContext); t != "" {
		return model.ResolvedContext{Text: t, Source: model.SourceUserContext}
	}
	if t := strings.TrimSpace(retrievedContext); t != "" {
		return model.ResolvedContext{Text: t, Source: model.SourceRetrievedContext}
	}
	return model.ResolvedContext{Text: NoContextFallback, Source: model.SourceNoContext}
}
