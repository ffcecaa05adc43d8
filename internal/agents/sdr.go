package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/voicelab-go/agent-days/internal/store"
	"github.com/voicelab-go/agent-days/pkg/agent"
)

// SDR is the inbound sales development persona: answers product questions
// from a small FAQ table and captures qualified leads to disk.
type SDR struct {
	faq    *store.FAQ
	leads  *store.LeadStore
	logger *slog.Logger
}

// NewSDR builds the SDR / lead capture agent for the fictional product
// "Pype", a voice AI platform.
func NewSDR(faq *store.FAQ, leads *store.LeadStore, logger *slog.Logger) *agent.Agent {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SDR{
		faq:    faq,
		leads:  leads,
		logger: logger.With("agent", "sdr"),
	}

	tools := agent.NewToolSet(
		agent.MakeTool("answer_faq", "Look up the best FAQ answer for a product question.", s.answerFAQ),
		agent.MakeTool("save_lead", "Save the captured lead details once qualification is complete.", s.saveLead),
	)

	return &agent.Agent{
		Name:         "SDR",
		Instructions: sdrInstructions,
		Tools:        tools,
		Greeting:     "Hi, thanks for reaching out about Pype! I'm happy to answer questions. Mind if I ask what brought you here today?",
	}
}

const sdrInstructions = `You are an INBOUND SDR VOICE AGENT for "Pype", a developer platform for building voice AI agents.

YOUR GOALS (in parallel, conversationally):
1. Answer the visitor's questions about the product. Use answer_faq; if it
   finds nothing, say you'll have the team follow up rather than inventing
   pricing or features.
2. Qualify the lead by naturally collecting, over the conversation:
   - name
   - company
   - email (confirm spelling back to them)
   - role
   - use case (what they want to build)
   - team size
   - timeline (when they want to go live)
3. When you have at least name, email and use case, call save_lead with
   everything collected so far. Missing fields are fine; leave them empty.

RULES:
- One question at a time; this is a voice call, keep turns short.
- Never invent answers to product questions. Ground them in answer_faq.
- Don't pressure. If the visitor just wants answers, help them and only ask
  for contact details once near the end.

STYLE:
- Friendly, curious, low-pressure. A helpful human SDR, not a form.`

func (s *SDR) answerFAQ(ctx context.Context, input struct {
	Question string `json:"question" desc:"The visitor's question, paraphrased is fine"`
}) (any, error) {
	entry, ok := s.faq.Match(input.Question)
	if !ok {
		return failure("No FAQ entry matches that question. Offer to have the team follow up instead of guessing."), nil
	}
	return success(entry.Answer).
		with("matched_question", entry.Question), nil
}

func (s *SDR) saveLead(ctx context.Context, input struct {
	Name     string `json:"name" desc:"The visitor's name"`
	Company  string `json:"company,omitempty" desc:"Company name"`
	Email    string `json:"email" desc:"Email address, confirmed with the visitor"`
	Role     string `json:"role,omitempty" desc:"Their role or title"`
	UseCase  string `json:"use_case" desc:"What they want to build"`
	TeamSize string `json:"team_size,omitempty" desc:"Rough team size"`
	Timeline string `json:"timeline,omitempty" desc:"When they want to go live"`
	Notes    string `json:"notes,omitempty" desc:"Anything else worth recording"`
}) (any, error) {
	lead := store.Lead{
		Name:     input.Name,
		Company:  input.Company,
		Email:    input.Email,
		Role:     input.Role,
		UseCase:  input.UseCase,
		TeamSize: input.TeamSize,
		Timeline: input.Timeline,
		Notes:    input.Notes,
	}
	name, err := s.leads.Save(lead, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("saved lead", "file", name, "company", input.Company)
	return success(fmt.Sprintf("Lead saved for %s. The team will follow up by email.", input.Name)).
		with("file", name), nil
}
