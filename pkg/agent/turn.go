package agent

import (
	"context"
	"strings"
	"sync"
	"time"
)

// TurnConfig configures end-of-turn detection over STT deltas.
type TurnConfig struct {
	// NoActivityTimeout forces a commit when no new transcript arrives for
	// this long. Default 3s.
	NoActivityTimeout time.Duration
	// MinWords is the minimum accumulated word count before a commit can
	// fire. Default 1.
	MinWords int
}

func (c TurnConfig) withDefaults() TurnConfig {
	if c.NoActivityTimeout <= 0 {
		c.NoActivityTimeout = 3 * time.Second
	}
	if c.MinWords <= 0 {
		c.MinWords = 1
	}
	return c
}

// TurnDetector accumulates transcript deltas and decides when the speaker's
// turn is complete: sentence-ending punctuation commits immediately, otherwise
// a no-activity timeout forces the commit.
type TurnDetector struct {
	config TurnConfig

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	transcript strings.Builder
	lastAt     time.Time
	committed  bool

	onCommit func(transcript string, forced bool)
}

// NewTurnDetector creates a turn detector. onCommit is invoked (on its own
// goroutine) with the full transcript once per turn; call Reset before the
// next turn.
func NewTurnDetector(config TurnConfig, onCommit func(transcript string, forced bool)) *TurnDetector {
	return &TurnDetector{
		config:   config.withDefaults(),
		onCommit: onCommit,
	}
}

// Start begins the timeout checker goroutine.
func (d *TurnDetector) Start(ctx context.Context) {
	d.mu.Lock()
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Unlock()

	go d.timeoutLoop()
}

// Stop stops the timeout checker goroutine.
func (d *TurnDetector) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
}

// AddTranscript appends an STT delta and checks for a punctuation trigger.
func (d *TurnDetector) AddTranscript(text string) {
	if text == "" {
		return
	}

	d.mu.Lock()
	if d.committed {
		d.mu.Unlock()
		return
	}

	if d.transcript.Len() > 0 {
		d.transcript.WriteString(" ")
	}
	d.transcript.WriteString(strings.TrimSpace(text))
	d.lastAt = time.Now()
	full := d.transcript.String()

	if endsWithPunctuation(full) && wordCount(full) >= d.config.MinWords {
		d.committed = true
		d.mu.Unlock()
		go d.onCommit(full, false)
		return
	}
	d.mu.Unlock()
}

// Reset clears accumulated state so the next turn can be detected.
func (d *TurnDetector) Reset() {
	d.mu.Lock()
	d.transcript.Reset()
	d.lastAt = time.Time{}
	d.committed = false
	d.mu.Unlock()
}

func (d *TurnDetector) timeoutLoop() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.checkTimeout()
		}
	}
}

func (d *TurnDetector) checkTimeout() {
	d.mu.Lock()
	if d.committed || d.transcript.Len() == 0 || d.lastAt.IsZero() {
		d.mu.Unlock()
		return
	}
	if time.Since(d.lastAt) < d.config.NoActivityTimeout {
		d.mu.Unlock()
		return
	}

	full := d.transcript.String()
	if wordCount(full) < d.config.MinWords {
		d.mu.Unlock()
		return
	}

	d.committed = true
	d.mu.Unlock()
	go d.onCommit(full, true)
}

func endsWithPunctuation(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
