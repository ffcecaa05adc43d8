// Package tts provides streaming text-to-speech for live agent sessions.
package tts

import (
	"context"
	"sync"
	"sync/atomic"
)

// Provider is the interface for text-to-speech services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// NewStreamingContext creates a context for incremental text streaming.
	// Text can be sent in chunks, and audio is streamed back as it's generated.
	NewStreamingContext(ctx context.Context, opts StreamOptions) (*StreamingContext, error)
}

// StreamOptions configures a streaming synthesis session.
type StreamOptions struct {
	Voice      string // Voice identifier (e.g. "en-US-matthew")
	Style      string // Speaking style (e.g. "Conversation")
	Format     string // Output encoding (default: "pcm")
	SampleRate int    // Sample rate in Hz (default: 24000)
}

// StreamingContext manages an incremental TTS session. Text is sent in chunks
// via SendText and audio chunks are received via Audio.
type StreamingContext struct {
	audio     chan []byte
	err       error
	errMu     sync.Mutex
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once

	// For implementations to use.
	SendFunc  func(text string, flush bool) error
	CloseFunc func() error
}

// NewStreamingContext creates a new streaming context shell for a provider
// implementation to wire up.
func NewStreamingContext() *StreamingContext {
	return &StreamingContext{
		audio: make(chan []byte, 100),
		done:  make(chan struct{}),
	}
}

// SendText sends a text chunk to be synthesized. Set flush=true on the last
// chunk to signal that generation should complete.
func (sc *StreamingContext) SendText(text string, flush bool) error {
	if sc.closed.Load() {
		return ErrContextClosed
	}
	if sc.SendFunc != nil {
		return sc.SendFunc(text, flush)
	}
	return nil
}

// Flush signals that all text has been sent.
func (sc *StreamingContext) Flush() error {
	return sc.SendText("", true)
}

// Audio returns the channel of audio chunks.
func (sc *StreamingContext) Audio() <-chan []byte {
	return sc.audio
}

// Err returns any error that occurred.
func (sc *StreamingContext) Err() error {
	sc.errMu.Lock()
	defer sc.errMu.Unlock()
	return sc.err
}

// Close closes the streaming context.
func (sc *StreamingContext) Close() error {
	var err error
	sc.closeOnce.Do(func() {
		sc.closed.Store(true)
		if sc.CloseFunc != nil {
			err = sc.CloseFunc()
		}
		close(sc.done)
	})
	return err
}

// Done returns a channel that's closed when the context is done.
func (sc *StreamingContext) Done() <-chan struct{} {
	return sc.done
}

// PushAudio sends an audio chunk. Returns false if closed.
func (sc *StreamingContext) PushAudio(chunk []byte) bool {
	select {
	case sc.audio <- chunk:
		return true
	case <-sc.done:
		return false
	}
}

// SetError records the context error.
func (sc *StreamingContext) SetError(err error) {
	sc.errMu.Lock()
	sc.err = err
	sc.errMu.Unlock()
}

// FinishAudio closes the audio channel.
func (sc *StreamingContext) FinishAudio() {
	close(sc.audio)
}

// ErrContextClosed is returned when sending to a closed context.
var ErrContextClosed = &contextClosedError{}

type contextClosedError struct{}

func (e *contextClosedError) Error() string { return "streaming context closed" }
