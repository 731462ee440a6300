package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// Pipeline failures
	ErrEmptyAudio              = errors.New("audio payload is empty")
	ErrMalformedUploadResponse = errors.New("upload response missing audio_url")
	ErrMalformedSubmitResponse = errors.New("submit response missing result_url")
	ErrTranscriptMissing       = errors.New("transcription done but no transcript text")
	ErrPollTimeout             = errors.New("transcription polling exceeded attempt budget")
	ErrMalformedLLMResponse    = errors.New("llm response missing answer content")

	// Entitlement
	ErrSubscriptionInactive = errors.New("subscription inactive or expired")
)
