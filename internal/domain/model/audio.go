package model

// AudioSubmission is the raw audio payload for one request. It lives only
// for the duration of the request and is discarded once transcription
// reaches a terminal state.
type AudioSubmission struct {
	Data      []byte
	Filename  string
	MediaType string
}

func NewAudioSubmission(data []byte, filename, mediaType string) *AudioSubmission {
	if filename == "" {
		filename = "audio.m4a"
	}
	if mediaType == "" {
		mediaType = "audio/m4a"
	}
	return &AudioSubmission{Data: data, Filename: filename, MediaType: mediaType}
}

func (a *AudioSubmission) Empty() bool { return len(a.Data) == 0 }
