package adapter

import (
	"context"

	"voice-assistant-api/internal/domain/model"
)

// TranscriptionAdapter is the port for the speech-to-text provider. It
// drives the provider's upload -> submit -> poll lifecycle and returns the
// final transcript text. The audio payload is not retained after the call.
type TranscriptionAdapter interface {
	Transcribe(ctx context.Context, audio *model.AudioSubmission) (string, error)
}
