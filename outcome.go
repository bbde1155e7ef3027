package voice

// Reason classifies why a stage did not fully succeed.
type Reason string

const (
	// ReasonSTTError: transcription attempts exhausted against a live provider.
	ReasonSTTError Reason = "stt_error"
	// ReasonEmptyTranscription: the provider succeeded but heard no speech.
	// Not a provider fault and never retried.
	ReasonEmptyTranscription Reason = "empty_transcription"
	// ReasonLLMError: reply attempts exhausted against a live provider.
	ReasonLLMError Reason = "llm_error"
	// ReasonTTSError: synthesis attempts exhausted against a live provider.
	ReasonTTSError Reason = "tts_error"
	// ReasonAPIUnavailable: required credential missing, no attempt was made.
	ReasonAPIUnavailable Reason = "api_unavailable"
	// ReasonGeneralError: anything unanticipated, caught at the outermost
	// request boundary.
	ReasonGeneralError Reason = "general_error"
)

// FallbackMessage returns the fixed user-facing text substituted when a
// stage cannot produce its real output. The catalog is part of the user
// contract; the texts are not generated.
func (r Reason) FallbackMessage() string {
	switch r {
	case ReasonSTTError:
		return "I'm having trouble hearing you right now. Could you please try again?"
	case ReasonEmptyTranscription:
		return "No speech detected in the audio file"
	case ReasonLLMError:
		return "I'm having trouble processing your request at the moment. Please try again in a few moments."
	case ReasonTTSError:
		return "I understand your question but I'm having trouble speaking right now. Please check back soon."
	case ReasonAPIUnavailable:
		return "Some of my services are temporarily unavailable. I apologize for the inconvenience."
	default:
		return "Something went wrong on my end. Please try again in a moment."
	}
}

// Outcome is a sealed interface representing the tri-state result of one
// pipeline stage. The unexported marker method prevents external
// implementations, so a type switch over Success, Degraded and Fatal is
// exhaustive.
type Outcome interface {
	isOutcome()
}

// Success carries the value the stage produced.
type Success struct {
	Value string
}

func (Success) isOutcome() {}

// Degraded means the stage failed but the pipeline can continue without
// its output, substituting Fallback for what the user would have received.
type Degraded struct {
	Reason   Reason
	Fallback string
}

func (Degraded) isOutcome() {}

// Fatal means the stage failed and the pipeline cannot continue.
type Fatal struct {
	Reason   Reason
	Fallback string
}

func (Fatal) isOutcome() {}

// Interface compliance checks.
var (
	_ Outcome = Success{}
	_ Outcome = Degraded{}
	_ Outcome = Fatal{}
)
