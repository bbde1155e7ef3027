// Package murf implements [voice.Synthesizer] for the Murf AI
// text-to-speech API.
//
// Murf renders speech server-side and hosts the result itself, so a
// successful call returns a URL straight from the provider.
package murf

const (
	defaultBaseURL = "https://api.murf.ai"
	defaultVoice   = "en-US-natalie"
	generatePath   = "/v1/speech/generate"
)

// apiGenerateRequest is the JSON body sent to the speech generation
// endpoint.
type apiGenerateRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

// apiGenerateResponse is the success body. AudioFile is the hosted URL of
// the rendered audio; a 200 without it is still a failure.
type apiGenerateResponse struct {
	AudioFile string `json:"audioFile"`
}

type apiErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}
