package store

import (
	"log/slog"
	"os"
	"strings"
)

// FAQEntry is one product question/answer pair with lookup keywords.
type FAQEntry struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// FAQ is the loaded FAQ table plus keyword-scored lookup over it.
type FAQ struct {
	entries []FAQEntry
	logger  *slog.Logger
}

// LoadFAQ reads the FAQ JSON array, writing the default set on first run and
// falling back to it in memory on read or parse errors.
func LoadFAQ(path string, logger *slog.Logger) *FAQ {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "faq")

	var entries []FAQEntry
	if err := readJSONFile(path, &entries); err != nil {
		entries = defaultFAQEntries()
		if os.IsNotExist(err) {
			if werr := writeJSONFile(path, entries); werr != nil {
				logger.Error("failed to write default FAQ", "path", path, "error", werr)
			} else {
				logger.Info("created default FAQ", "path", path, "entries", len(entries))
			}
		} else {
			logger.Error("failed to load FAQ, using default", "path", path, "error", err)
		}
	}
	return &FAQ{entries: entries, logger: logger}
}

// Entries returns all FAQ entries in declaration order.
func (f *FAQ) Entries() []FAQEntry {
	return f.entries
}

// Match scores every entry by the number of its keywords that appear as
// substrings of the query and returns the highest scorer. Ties go to the
// first-seen entry; a best score of zero means no match.
func (f *FAQ) Match(query string) (FAQEntry, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return FAQEntry{}, false
	}

	best := -1
	bestScore := 0
	for i, entry := range f.entries {
		score := 0
		for _, kw := range entry.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw == "" {
				continue
			}
			if strings.Contains(q, kw) {
				score++
			}
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return FAQEntry{}, false
	}
	return f.entries[best], true
}

func defaultFAQEntries() []FAQEntry {
	return []FAQEntry{
		{ID: 1, Question: "What does the product do?", Answer: "It lets teams build and deploy real-time voice agents on top of their existing data, with built-in speech recognition and synthesis.", Keywords: []string{"product", "what", "do", "voice", "agent"}},
		{ID: 2, Question: "How is it priced?", Answer: "Usage-based pricing per conversation minute, with a free tier of 500 minutes per month and volume discounts on annual plans.", Keywords: []string{"price", "pricing", "cost", "plan", "free"}},
		{ID: 3, Question: "Does it integrate with my CRM?", Answer: "Yes, there are native integrations for common CRMs plus a webhook API for everything else.", Keywords: []string{"crm", "integrate", "integration", "webhook", "api"}},
		{ID: 4, Question: "Is my data used for training?", Answer: "No. Conversation audio and transcripts stay in your account and are never used to train shared models.", Keywords: []string{"data", "privacy", "training", "secure", "security"}},
		{ID: 5, Question: "How long does onboarding take?", Answer: "Most teams ship their first agent within a week; a guided onboarding call is included on every paid plan.", Keywords: []string{"onboarding", "setup", "start", "long", "week"}},
	}
}
