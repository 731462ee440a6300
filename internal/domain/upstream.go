package domain

import "fmt"

// Stage identifies the pipeline step that produced a failure.
type Stage string

const (
	StageUpload   Stage = "upload"
	StageSubmit   Stage = "submit"
	StagePoll     Stage = "poll"
	StageGenerate Stage = "generate"
)

// UpstreamError is a non-2xx reply from a provider endpoint. The provider's
// own status code and body are surfaced so the caller can tell the failing
// stage apart. These calls are never retried.
type UpstreamError struct {
	Stage  Stage
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: provider returned %d: %s", e.Stage, e.Status, e.Body)
}

// ProviderJobError means the transcription provider explicitly reported the
// job as failed, carrying its error text.
type ProviderJobError struct {
	Message string
}

func (e *ProviderJobError) Error() string {
	return fmt.Sprintf("transcription job failed: %s", e.Message)
}
