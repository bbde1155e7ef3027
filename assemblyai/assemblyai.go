// Package assemblyai implements [voice.Transcriber] for the AssemblyAI
// speech-to-text API.
//
// Transcription is a three-step exchange: upload the raw audio, create a
// transcript job for it, then poll the job until the provider reports it
// completed or failed.
package assemblyai

import "time"

const (
	defaultBaseURL      = "https://api.assemblyai.com"
	defaultPollInterval = 3 * time.Second
	uploadPath          = "/v2/upload"
	transcriptPath      = "/v2/transcript"

	statusCompleted = "completed"
	statusError     = "error"
)

// apiUploadResponse is the body returned by the upload endpoint.
type apiUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

// apiTranscriptRequest is the JSON body sent to create a transcript job.
type apiTranscriptRequest struct {
	AudioURL string `json:"audio_url"`
}

// apiTranscript is a transcript job as returned by the API. Text and
// Confidence are null until Status is "completed".
type apiTranscript struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}
