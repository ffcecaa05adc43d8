package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

// Mode is a tutor teaching mode. The tutor always sits in exactly one mode
// and each mode speaks with its own voice.
type Mode string

const (
	ModeIntro     Mode = "intro"
	ModeLearn     Mode = "learn"
	ModeQuiz      Mode = "quiz"
	ModeTeachBack Mode = "teach_back"
)

// ErrInvalidTransition is returned when a requested mode or concept does not
// exist. Unlike most tool failures this is a hard error: it aborts the turn.
var ErrInvalidTransition = errors.New("invalid tutor transition")

// TutorState is the tutor's current position: which mode, which concept.
// Intro carries no concept.
type TutorState struct {
	Mode      Mode
	ConceptID string
}

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.TrimSpace(strings.ToLower(s))) {
	case ModeIntro:
		return ModeIntro, true
	case ModeLearn:
		return ModeLearn, true
	case ModeQuiz:
		return ModeQuiz, true
	case ModeTeachBack:
		return ModeTeachBack, true
	}
	return "", false
}

// Transition computes the next tutor state. It is pure: no I/O, no mutation.
// Any mode may move to any other mode, but every mode except intro requires a
// concept that exists in the table. An empty requestedConcept keeps the
// current one.
func Transition(current TutorState, requestedMode string, requestedConcept string, table *store.ConceptTable) (TutorState, error) {
	mode, ok := ParseMode(requestedMode)
	if !ok {
		return current, fmt.Errorf("%w: unknown mode %q", ErrInvalidTransition, requestedMode)
	}

	if mode == ModeIntro {
		return TutorState{Mode: ModeIntro}, nil
	}

	conceptID := strings.TrimSpace(strings.ToLower(requestedConcept))
	if conceptID == "" {
		conceptID = current.ConceptID
	}
	if conceptID == "" {
		return current, fmt.Errorf("%w: mode %q requires a concept", ErrInvalidTransition, mode)
	}
	if _, ok := table.ByID(conceptID); !ok {
		return current, fmt.Errorf("%w: unknown concept %q", ErrInvalidTransition, requestedConcept)
	}

	return TutorState{Mode: mode, ConceptID: conceptID}, nil
}

// modeVoice maps a tutor mode to its speaking voice. Each mode is a distinct
// character, so the voice changes with the mode.
func modeVoice(mode Mode) *agent.VoiceConfig {
	switch mode {
	case ModeQuiz:
		return &agent.VoiceConfig{Voice: "en-US-alicia", Style: "Conversation"}
	case ModeTeachBack:
		return &agent.VoiceConfig{Voice: "en-US-ken", Style: "Conversation"}
	default:
		return &agent.VoiceConfig{Voice: "en-US-matthew", Style: "Conversation"}
	}
}

// Tutor is the multi-mode programming tutor persona.
type Tutor struct {
	table  *store.ConceptTable
	agent  *agent.Agent
	state  TutorState
	logger *slog.Logger
}

// NewTutor builds the tutor persona starting in initialMode ("intro" when
// empty or unrecognized).
func NewTutor(table *store.ConceptTable, initialMode string, logger *slog.Logger) *Tutor {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tutor{
		table:  table,
		logger: logger.With("agent", "tutor"),
	}

	mode, ok := ParseMode(initialMode)
	if !ok || mode == "" {
		mode = ModeIntro
	}
	state := TutorState{Mode: ModeIntro}
	if mode != ModeIntro {
		// A non-intro start needs a concept; default to the first one.
		if concepts := table.Concepts(); len(concepts) > 0 {
			state = TutorState{Mode: mode, ConceptID: concepts[0].ID}
		}
	}

	tools := agent.NewToolSet(
		agent.MakeTool("list_concepts", "List the concepts available to study.", t.listConcepts),
		agent.MakeTool("switch_mode", "Switch the tutor to a different mode and/or concept.", t.switchMode),
	)

	t.agent = &agent.Agent{
		Name:     "Tutor",
		Tools:    tools,
		Greeting: "Hi! I'm your programming tutor. Want to learn a concept, take a quiz, or teach something back to me?",
	}
	t.apply(state)
	return t
}

// Agent returns the configured persona.
func (t *Tutor) Agent() *agent.Agent {
	return t.agent
}

// State returns the tutor's current state.
func (t *Tutor) State() TutorState {
	return t.state
}

// apply installs a state: instructions and voice change together.
func (t *Tutor) apply(state TutorState) {
	t.state = state
	t.agent.Instructions = t.instructions(state)
	t.agent.Voice = modeVoice(state.Mode)
	t.logger.Info("tutor mode set", "mode", state.Mode, "concept", state.ConceptID)
}

func (t *Tutor) instructions(state TutorState) string {
	base := `You are a PATIENT PROGRAMMING TUTOR for absolute beginners.

GENERAL RULES:
- Short spoken turns. One idea at a time.
- Available concepts: ` + t.table.Listing() + `
- Use list_concepts if the user asks what they can study.
- When the user asks to change activity or topic ("quiz me", "let's do recursion",
  "my turn to explain"), call switch_mode with the new mode and/or concept.
  Modes: intro, learn, quiz, teach_back.`

	switch state.Mode {
	case ModeLearn:
		c, _ := t.table.ByID(state.ConceptID)
		return base + fmt.Sprintf(`

CURRENT MODE: LEARN — you are teaching %q.
- Explain it from this summary, in your own words, with one tiny example: %s
- Check understanding with a small question before moving on.`, c.Title, c.Summary)
	case ModeQuiz:
		c, _ := t.table.ByID(state.ConceptID)
		return base + fmt.Sprintf(`

CURRENT MODE: QUIZ — you are quizzing the user on %q.
- Ask one question at a time. A good starter: %q
- After each answer, say whether it's right, give a one-line explanation, then ask the next.
- After three questions, summarize how they did.`, c.Title, c.SampleQuestion)
	case ModeTeachBack:
		c, _ := t.table.ByID(state.ConceptID)
		return base + fmt.Sprintf(`

CURRENT MODE: TEACH-BACK — the user explains %q to YOU.
- Play a curious student. Ask them to explain it, then probe with follow-ups.
- Gently correct anything wrong they say, citing this summary: %s
- Praise what they got right.`, c.Title, c.Summary)
	default:
		return base + `

CURRENT MODE: INTRO.
- Welcome the user, briefly describe the three activities (learn, quiz, teach-back)
  and the available concepts, and ask what they'd like to do.
- Once they choose, call switch_mode.`
	}
}

func (t *Tutor) listConcepts(ctx context.Context, input struct{}) (any, error) {
	return result{
		"concepts": t.table.Concepts(),
	}, nil
}

func (t *Tutor) switchMode(ctx context.Context, input struct {
	Mode    string `json:"mode" desc:"Target mode" enum:"intro,learn,quiz,teach_back"`
	Concept string `json:"concept,omitempty" desc:"Concept id, e.g. variables, loops, functions, recursion"`
}) (any, error) {
	next, err := Transition(t.state, input.Mode, input.Concept, t.table)
	if err != nil {
		return nil, err
	}
	t.apply(next)

	if next.Mode == ModeIntro {
		return success("Switched back to the intro. Ask the user what they'd like to do."), nil
	}
	c, _ := t.table.ByID(next.ConceptID)
	return success(fmt.Sprintf("Switched to %s mode on %q. Continue in character for the new mode.", next.Mode, c.Title)).
		with("mode", string(next.Mode)).
		with("concept", next.ConceptID), nil
}
