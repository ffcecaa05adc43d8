package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const murfDefaultWSBase = "wss://api.murf.ai/v1/speech/stream-input"

// MurfProvider implements the TTS Provider interface using Murf's streaming
// websocket API.
type MurfProvider struct {
	apiKey    string
	wsBaseURL string
}

// NewMurf creates a new Murf TTS provider.
func NewMurf(apiKey string) *MurfProvider {
	return &MurfProvider{
		apiKey:    strings.TrimSpace(apiKey),
		wsBaseURL: murfDefaultWSBase,
	}
}

// WithWSBaseURL overrides the websocket endpoint. Used by tests.
func (m *MurfProvider) WithWSBaseURL(base string) *MurfProvider {
	base = strings.TrimSpace(base)
	if base != "" {
		m.wsBaseURL = base
	}
	return m
}

// Name returns the provider identifier.
func (m *MurfProvider) Name() string {
	return "murf"
}

// NewStreamingContext opens a streaming synthesis session. The voice
// configuration is fixed for the lifetime of the context.
func (m *MurfProvider) NewStreamingContext(ctx context.Context, opts StreamOptions) (*StreamingContext, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("murf api key is required")
	}
	voice := strings.TrimSpace(opts.Voice)
	if voice == "" {
		return nil, fmt.Errorf("voice id is required")
	}

	wsURL, err := buildMurfWSURL(m.wsBaseURL, opts)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("api-key", m.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("websocket connect: %w", err)
	}

	sc := NewStreamingContext()
	ctxDone := make(chan struct{})
	var closeOnce sync.Once
	closeConn := func() error {
		var closeErr error
		closeOnce.Do(func() {
			close(ctxDone)
			closeErr = conn.Close()
		})
		return closeErr
	}

	voiceConfig := map[string]any{
		"voiceId": voice,
	}
	if opts.Style != "" {
		voiceConfig["style"] = opts.Style
	}
	if err := conn.WriteJSON(map[string]any{
		"voice_config": voiceConfig,
	}); err != nil {
		_ = closeConn()
		return nil, err
	}

	sc.SendFunc = func(text string, flush bool) error {
		payload := map[string]any{}
		if text = strings.TrimSpace(text); text != "" {
			payload["text"] = text + " "
		}
		if flush {
			payload["end"] = true
		}
		if len(payload) == 0 {
			return nil
		}
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		return conn.WriteJSON(payload)
	}
	sc.CloseFunc = closeConn

	go func() {
		defer sc.FinishAudio()
		defer sc.Close()
		for {
			select {
			case <-ctx.Done():
				sc.SetError(ctx.Err())
				return
			case <-ctxDone:
				return
			default:
			}
			_, data, err := conn.ReadMessage()
			if err != nil {
				sc.SetError(err)
				return
			}
			var msg murfStreamResponse
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if msg.Error != "" {
				sc.SetError(fmt.Errorf("murf: %s", msg.Error))
				return
			}
			if msg.Audio != "" {
				audio, err := base64.StdEncoding.DecodeString(msg.Audio)
				if err == nil && len(audio) > 0 {
					if !sc.PushAudio(audio) {
						return
					}
				}
			}
			if msg.Final {
				return
			}
		}
	}()

	return sc, nil
}

type murfStreamResponse struct {
	Audio string `json:"audio"`
	Final bool   `json:"final"`
	Error string `json:"error"`
}

func buildMurfWSURL(base string, opts StreamOptions) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid murf ws url: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "wss"
	}
	q := u.Query()
	format := opts.Format
	if format == "" {
		format = "PCM"
	}
	q.Set("format", strings.ToUpper(format))
	sampleRate := opts.SampleRate
	if sampleRate == 0 {
		sampleRate = 24000
	}
	q.Set("sample_rate", strconv.Itoa(sampleRate))
	q.Set("channel_type", "MONO")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
