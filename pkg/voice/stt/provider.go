// Package stt provides streaming speech-to-text for live agent sessions.
package stt

import "context"

// Provider is the interface for speech-to-text services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// NewStream opens a streaming transcription session.
	// Audio is sent incrementally via SendAudio and transcript deltas are
	// received via Transcripts.
	NewStream(ctx context.Context, opts StreamOptions) (*Stream, error)
}

// StreamOptions configures a streaming transcription session.
type StreamOptions struct {
	Model      string // Provider-specific model (default: "nova-3")
	Language   string // ISO language code (default: "en")
	Encoding   string // Audio encoding (default: "linear16")
	SampleRate int    // Audio sample rate in Hz (default: 16000)
	Interim    bool   // Emit interim (non-final) transcripts
}

// TranscriptDelta is a streaming transcript update.
type TranscriptDelta struct {
	Text        string  // Transcript for this segment
	Final       bool    // True when the segment will not be revised
	SpeechFinal bool    // True when the provider detected end of speech
	Confidence  float64 // Provider confidence, 0..1
}
