package model

type TranscriptionStatus string

const (
	TranscriptionUploading TranscriptionStatus = "uploading"
	TranscriptionSubmitted TranscriptionStatus = "submitted"
	TranscriptionPolling   TranscriptionStatus = "polling"
	TranscriptionDone      TranscriptionStatus = "done"
	TranscriptionError     TranscriptionStatus = "error"
	TranscriptionTimedOut  TranscriptionStatus = "timed_out"
)

// Terminal reports whether the job can make no further progress.
func (s TranscriptionStatus) Terminal() bool {
	return s == TranscriptionDone || s == TranscriptionError || s == TranscriptionTimedOut
}

// TranscriptionJob tracks one in-flight transcription request against the
// provider. It is request-local: created when the upload succeeds and
// discarded once a terminal status is reached.
type TranscriptionJob struct {
	AudioURL     string
	ResultURL    string
	Status       TranscriptionStatus
	PollAttempts int
}

func NewTranscriptionJob() *TranscriptionJob {
	return &TranscriptionJob{Status: TranscriptionUploading}
}
