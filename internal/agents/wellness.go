package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

// Wellness is the daily check-in companion. The save_checkin tool is the
// authoritative record; raw transcript lines are kept in memory only as a
// fallback summary source if the session ends before the tool fires.
type Wellness struct {
	log    *store.WellnessLog
	agent  *agent.Agent
	logger *slog.Logger

	mu    sync.Mutex
	lines []string
	saved bool
}

// NewWellness builds the wellness check-in persona. Yesterday's entry, when
// present, is folded into the instructions so the agent can follow up on it.
func NewWellness(log *store.WellnessLog, logger *slog.Logger) *Wellness {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Wellness{
		log:    log,
		logger: logger.With("agent", "wellness"),
	}

	tools := agent.NewToolSet(
		agent.MakeTool("save_checkin", "Persist today's check-in once mood, energy and goals have been gathered.", w.saveCheckin),
	)

	instructions := wellnessInstructions
	if last, ok := log.Last(); ok {
		instructions += fmt.Sprintf(
			"\n\nPREVIOUS CHECK-IN (%s):\n- Mood: %s\n- Energy: %s\n- Goals: %s\nOpen by briefly referencing how yesterday went before asking about today.",
			last.Timestamp, last.Mood, last.Energy, strings.Join(last.Goals, "; "))
	}

	w.agent = &agent.Agent{
		Name:         "Wellness",
		Instructions: instructions,
		Tools:        tools,
		Greeting:     "Hey, good to hear from you. How are you feeling today?",
	}
	return w
}

// Agent returns the configured persona.
func (w *Wellness) Agent() *agent.Agent {
	return w.agent
}

const wellnessInstructions = `You are a WARM DAILY WELLNESS CHECK-IN COMPANION.

YOUR GOAL:
- Have a short, caring conversation that covers three things:
  1. How the user is feeling today (mood).
  2. Their energy level (low / medium / high, in their own words).
  3. One to three small goals or intentions for the day.

CONVERSATION FLOW:
- Ask about each topic naturally, one at a time. Don't interrogate.
- Reflect back what you hear ("sounds like a draining week").
- Once you have mood, energy and at least one goal, call save_checkin with a
  one-sentence summary, then confirm to the user that today's check-in is saved.
- Call save_checkin exactly once per session.

BOUNDARIES:
- You are a check-in companion, not a therapist or doctor. If the user brings
  up serious distress or health issues, gently suggest talking to a
  professional or someone they trust.

STYLE:
- Warm, unhurried, brief. One question at a time.`

// ObserveTranscript records a final user transcript line. Used as raw
// material if the session closes without a save_checkin call.
func (w *Wellness) ObserveTranscript(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.mu.Lock()
	w.lines = append(w.lines, text)
	w.mu.Unlock()
}

// Flush writes a fallback entry built from observed transcript lines when the
// session ended without the tool firing. No-op once a check-in was saved.
func (w *Wellness) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.saved || len(w.lines) == 0 {
		return nil
	}

	entry := store.WellnessEntry{
		Mood:    "unknown",
		Energy:  "unknown",
		Summary: "Session ended early. Raw notes: " + strings.Join(w.lines, " / "),
	}
	if err := w.log.Append(entry, time.Now()); err != nil {
		return fmt.Errorf("flush wellness fallback: %w", err)
	}
	w.saved = true
	w.logger.Info("saved fallback wellness entry", "lines", len(w.lines))
	return nil
}

func (w *Wellness) saveCheckin(ctx context.Context, input struct {
	Mood    string   `json:"mood" desc:"How the user feels today, in their own words"`
	Energy  string   `json:"energy" desc:"Energy level, e.g. low, medium, high"`
	Goals   []string `json:"goals" desc:"One to three small goals for the day"`
	Summary string   `json:"summary" desc:"One-sentence summary of the check-in"`
}) (any, error) {
	entry := store.WellnessEntry{
		Mood:    input.Mood,
		Energy:  input.Energy,
		Goals:   input.Goals,
		Summary: input.Summary,
	}

	// The append and the saved flag must move together, or a concurrent
	// Flush slips in between and records a second, fallback entry.
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.log.Append(entry, time.Now()); err != nil {
		return nil, err
	}
	w.saved = true

	w.logger.Info("saved wellness check-in", "mood", input.Mood, "goals", len(input.Goals))
	return success("Today's check-in has been saved."), nil
}
