package agents

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicelab-go/agent-days/internal/store"
)

func loadTestConcepts(t *testing.T) *store.ConceptTable {
	t.Helper()
	return store.LoadConcepts(filepath.Join(t.TempDir(), "tutor_content.json"), nil)
}

func TestTransition(t *testing.T) {
	table := loadTestConcepts(t)
	intro := TutorState{Mode: ModeIntro}

	next, err := Transition(intro, "learn", "variables", table)
	require.NoError(t, err)
	assert.Equal(t, TutorState{Mode: ModeLearn, ConceptID: "variables"}, next)

	// Omitting the concept keeps the current one.
	next, err = Transition(next, "quiz", "", table)
	require.NoError(t, err)
	assert.Equal(t, TutorState{Mode: ModeQuiz, ConceptID: "variables"}, next)

	// Switching back to intro drops the concept.
	next, err = Transition(next, "intro", "", table)
	require.NoError(t, err)
	assert.Equal(t, intro, next)
}

func TestTransitionRejectsUnknownMode(t *testing.T) {
	table := loadTestConcepts(t)
	state := TutorState{Mode: ModeLearn, ConceptID: "loops"}

	got, err := Transition(state, "lecture", "", table)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, state, got, "state must be unchanged on error")
}

func TestTransitionRejectsUnknownConcept(t *testing.T) {
	table := loadTestConcepts(t)

	_, err := Transition(TutorState{Mode: ModeIntro}, "quiz", "pointers", table)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionRequiresConceptOutsideIntro(t *testing.T) {
	table := loadTestConcepts(t)

	_, err := Transition(TutorState{Mode: ModeIntro}, "teach_back", "", table)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionNormalizesInput(t *testing.T) {
	table := loadTestConcepts(t)

	next, err := Transition(TutorState{Mode: ModeIntro}, " Quiz ", " Recursion ", table)
	require.NoError(t, err)
	assert.Equal(t, TutorState{Mode: ModeQuiz, ConceptID: "recursion"}, next)
}

func TestNewTutorStartsInConfiguredMode(t *testing.T) {
	table := loadTestConcepts(t)

	tutor := NewTutor(table, "learn", nil)
	assert.Equal(t, ModeLearn, tutor.State().Mode)
	assert.Equal(t, "variables", tutor.State().ConceptID)

	tutor = NewTutor(table, "nonsense", nil)
	assert.Equal(t, ModeIntro, tutor.State().Mode)
}

func TestSwitchModeChangesVoiceAndInstructions(t *testing.T) {
	table := loadTestConcepts(t)
	tutor := NewTutor(table, "intro", nil)
	tc := toolCaller{t: t, tools: tutor.Agent().Tools}

	assert.Equal(t, "en-US-matthew", tutor.Agent().Voice.Voice)

	r := tc.call("switch_mode", `{"mode":"quiz","concept":"loops"}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, ModeQuiz, tutor.State().Mode)
	assert.Equal(t, "en-US-alicia", tutor.Agent().Voice.Voice)
	assert.True(t, strings.Contains(tutor.Agent().Instructions, "QUIZ"))

	r = tc.call("switch_mode", `{"mode":"teach_back"}`)
	assert.Equal(t, true, r["success"])
	assert.Equal(t, "loops", tutor.State().ConceptID)
	assert.Equal(t, "en-US-ken", tutor.Agent().Voice.Voice)
}

func TestSwitchModeInvalidIsHardError(t *testing.T) {
	table := loadTestConcepts(t)
	tutor := NewTutor(table, "learn", nil)
	tc := toolCaller{t: t, tools: tutor.Agent().Tools}

	_, err := tc.callRaw("switch_mode", `{"mode":"quiz","concept":"pointers"}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	// The failed switch left the state alone.
	assert.Equal(t, ModeLearn, tutor.State().Mode)
	assert.Equal(t, "variables", tutor.State().ConceptID)
}

func TestListConcepts(t *testing.T) {
	table := loadTestConcepts(t)
	tutor := NewTutor(table, "intro", nil)
	tc := toolCaller{t: t, tools: tutor.Agent().Tools}

	r := tc.call("list_concepts", `{}`)
	concepts, ok := r["concepts"].([]store.Concept)
	require.True(t, ok)
	assert.Len(t, concepts, 4)
}
