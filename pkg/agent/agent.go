// Package agent provides the live voice agent runtime: typed function tools,
// turn detection over streaming transcripts, the LLM tool-call loop, and
// text-to-speech playback, glued together by Session.
//
// The hosted speech, language and synthesis models are external collaborators;
// this package only wires them.
package agent

// VoiceConfig selects the TTS voice for a persona.
type VoiceConfig struct {
	Voice string // Provider voice id, e.g. "en-US-matthew"
	Style string // Speaking style, e.g. "Conversation"
}

// Agent is a persona: an instruction template plus the tools the hosted model
// may call while conversing.
type Agent struct {
	Name         string
	Instructions string
	Tools        *ToolSet
	Voice        *VoiceConfig // Optional; overrides the session default voice
	Greeting     string       // Optional opening line spoken when the session starts
}
