package ai

import (
	"github.com/pkoukk/tiktoken-go"

	"voice-assistant-api/internal/domain/ports/adapter"
)

// estimateTokens counts prompt tokens with tiktoken, falling back to
// cl100k_base for models the library does not know (DashScope/Qwen report
// usage themselves, so this only feeds pre-call estimates and metrics).
func estimateTokens(model string, messages []adapter.Message) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, err
		}
	}
	total := 0
	for _, m := range messages {
		// per-message framing overhead, same constant the OpenAI cookbook uses
		total += 4
		total += len(enc.Encode(m.Content, nil, nil))
		total += len(enc.Encode(m.Role, nil, nil))
	}
	total += 2
	return total, nil
}
