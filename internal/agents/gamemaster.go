package agents

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/voicelab-go/agent-days/pkg/agent"
)

// NewGameMaster builds the interactive fantasy game master persona. It keeps
// no persistent state; the whole adventure lives in the conversation history.
func NewGameMaster() *agent.Agent {
	tools := agent.NewToolSet(
		agent.MakeTool("roll_dice", "Roll one or more dice and report the results.", rollDice),
	)

	return &agent.Agent{
		Name:         "GameMaster",
		Instructions: gameMasterInstructions,
		Tools:        tools,
		Greeting:     "Welcome, adventurer. The mists part before you. Shall we begin your tale?",
	}
}

const gameMasterInstructions = `You are an IMMERSIVE VOICE GAME MASTER running a short fantasy adventure.

WORLD:
- A classic fantasy setting: forests, ruins, taverns, a looming threat of your design.
- You narrate scenes vividly but briefly (2-4 sentences per beat, this is voice).

RULES OF PLAY:
- The player describes what they do; you narrate consequences.
- Whenever an outcome is uncertain (attacks, persuasion, traps, searching), call roll_dice and weave the result into the narration. High rolls favor the player, low rolls complicate things.
- Never decide uncertain outcomes without rolling.
- Keep a consistent world: names, places and injuries persist across the session.
- Offer the player 2-3 concrete options when they seem stuck, but accept anything they invent.

TONE:
- Dramatic but playful. Address the player as "you".
- No graphic violence; keep it adventurous, not gruesome.`

func rollDice(ctx context.Context, input struct {
	Sides int `json:"sides,omitempty" desc:"Number of sides per die (default 20)"`
	Count int `json:"count,omitempty" desc:"Number of dice to roll (default 1, max 10)"`
}) (any, error) {
	sides := input.Sides
	if sides < 2 {
		sides = 20
	}
	count := input.Count
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	rolls := make([]int, count)
	total := 0
	for i := range rolls {
		rolls[i] = rand.Intn(sides) + 1
		total += rolls[i]
	}

	return success(fmt.Sprintf("Rolled %dd%d for a total of %d.", count, sides, total)).
		with("rolls", rolls).
		with("total", total), nil
}
