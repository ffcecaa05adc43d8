package stt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const deepgramWSBase = "wss://api.deepgram.com/v1/listen"

// DeepgramProvider implements the STT Provider interface using Deepgram's
// real-time websocket API.
type DeepgramProvider struct {
	apiKey    string
	wsBaseURL string
}

// NewDeepgram creates a new Deepgram STT provider.
func NewDeepgram(apiKey string) *DeepgramProvider {
	return &DeepgramProvider{
		apiKey:    apiKey,
		wsBaseURL: deepgramWSBase,
	}
}

// WithWSBaseURL overrides the websocket endpoint. Used by tests.
func (d *DeepgramProvider) WithWSBaseURL(base string) *DeepgramProvider {
	if base != "" {
		d.wsBaseURL = base
	}
	return d
}

// Name returns the provider identifier.
func (d *DeepgramProvider) Name() string {
	return "deepgram"
}

// NewStream opens a live transcription session via websocket.
func (d *DeepgramProvider) NewStream(ctx context.Context, opts StreamOptions) (*Stream, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key is required")
	}

	u, err := url.Parse(d.wsBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse websocket URL: %w", err)
	}

	q := u.Query()

	model := opts.Model
	if model == "" {
		model = "nova-3"
	}
	q.Set("model", model)

	language := opts.Language
	if language == "" {
		language = "en"
	}
	q.Set("language", language)

	encoding := opts.Encoding
	if encoding == "" {
		encoding = "linear16"
	}
	q.Set("encoding", encoding)

	sampleRate := opts.SampleRate
	if sampleRate == 0 {
		sampleRate = 16000
	}
	q.Set("sample_rate", strconv.Itoa(sampleRate))

	q.Set("channels", "1")
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	if opts.Interim {
		q.Set("interim_results", "true")
	}

	u.RawQuery = q.Encode()

	headers := http.Header{}
	headers.Set("Authorization", "Token "+d.apiKey)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, resp, err := dialer.DialContext(ctx, u.String(), headers)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if len(body) > 0 {
				return nil, fmt.Errorf("websocket connect (status %d): %s", resp.StatusCode, string(body))
			}
			return nil, fmt.Errorf("websocket connect: status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket connect: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		conn:        conn,
		transcripts: make(chan TranscriptDelta, 100),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}

	go s.readLoop()
	go s.keepAliveLoop()

	return s, nil
}

// Stream is a live transcription session.
type Stream struct {
	conn        *websocket.Conn
	transcripts chan TranscriptDelta
	done        chan struct{}
	closed      atomic.Bool
	writeMu     sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
}

type deepgramResponse struct {
	Type        string `json:"type"` // "Results", "Metadata", "SpeechStarted", "UtteranceEnd"
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`
	Channel     struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func (s *Stream) readLoop() {
	defer func() {
		close(s.transcripts)
		close(s.done)
	}()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		var msg deepgramResponse
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		if msg.Type != "Results" || len(msg.Channel.Alternatives) == 0 {
			continue
		}

		alt := msg.Channel.Alternatives[0]
		if alt.Transcript == "" {
			continue
		}

		delta := TranscriptDelta{
			Text:        alt.Transcript,
			Final:       msg.IsFinal,
			SpeechFinal: msg.SpeechFinal,
			Confidence:  alt.Confidence,
		}
		select {
		case s.transcripts <- delta:
		case <-s.ctx.Done():
			return
		}
	}
}

// keepAliveLoop pings the server so idle sessions are not closed after 10s.
func (s *Stream) keepAliveLoop() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.writeText(`{"type":"KeepAlive"}`)
		}
	}
}

// SendAudio sends raw audio to the session. Audio must match the encoding and
// sample rate given at session creation.
func (s *Stream) SendAudio(data []byte) error {
	if s.closed.Load() {
		return fmt.Errorf("stream closed")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Finalize flushes buffered audio so pending transcripts are emitted.
func (s *Stream) Finalize() error {
	if s.closed.Load() {
		return fmt.Errorf("stream closed")
	}
	return s.writeText(`{"type":"Finalize"}`)
}

// Transcripts returns the channel of transcript deltas.
func (s *Stream) Transcripts() <-chan TranscriptDelta {
	return s.transcripts
}

// Done returns a channel that's closed when the session ends.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close ends the session gracefully.
func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.cancel()

	s.writeMu.Lock()
	s.conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`))
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()

	return s.conn.Close()
}

func (s *Stream) writeText(payload string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}
