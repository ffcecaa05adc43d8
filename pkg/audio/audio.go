// Package audio provides microphone capture and speaker playback for the
// voice demos.
package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gen2brain/malgo"
)

// Mic captures 16-bit mono PCM from the default input device.
type Mic struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device

	mu     sync.Mutex
	chunks chan []byte
	closed bool
}

// NewMic opens the default capture device at the given sample rate.
func NewMic(sampleRate int) (*Mic, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	m := &Mic{
		ctx:    ctx,
		chunks: make(chan []byte, 100),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			buf := make([]byte, len(input))
			copy(buf, input)
			m.mu.Lock()
			if !m.closed {
				select {
				case m.chunks <- buf:
				default: // drop rather than stall the audio thread
				}
			}
			m.mu.Unlock()
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("init capture device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("start capture device: %w", err)
	}
	m.device = device
	return m, nil
}

// Chunks returns the channel of captured PCM chunks.
func (m *Mic) Chunks() <-chan []byte {
	return m.chunks
}

// Close stops capture and releases the device.
func (m *Mic) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.chunks)
	m.mu.Unlock()

	m.device.Uninit()
	m.ctx.Uninit()
	m.ctx.Free()
}

// Speaker plays 16-bit mono PCM on the default output device.
type Speaker struct {
	otoCtx *oto.Context
	player *oto.Player
	pw     *io.PipeWriter
}

// NewSpeaker opens the default playback device at the given sample rate.
func NewSpeaker(sampleRate int) (*Speaker, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	<-ready

	pr, pw := io.Pipe()
	player := otoCtx.NewPlayer(pr)
	player.Play()

	return &Speaker{otoCtx: otoCtx, player: player, pw: pw}, nil
}

// Write queues a PCM chunk for playback.
func (s *Speaker) Write(chunk []byte) error {
	_, err := s.pw.Write(chunk)
	return err
}

// Close drains and releases the playback device.
func (s *Speaker) Close() {
	s.pw.Close()
	s.player.Close()
}
