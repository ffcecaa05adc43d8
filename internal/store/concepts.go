package store

import (
	"log/slog"
	"os"
	"strings"
)

// Concept is one tutor lesson entry. Static, loaded once per process.
type Concept struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	SampleQuestion string `json:"sample_question"`
}

// ConceptTable is the loaded tutor content.
type ConceptTable struct {
	concepts []Concept
	logger   *slog.Logger
}

// LoadConcepts reads the tutor content JSON array, writing the default set on
// first run and falling back to it in memory on read or parse errors.
func LoadConcepts(path string, logger *slog.Logger) *ConceptTable {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "tutor_content")

	var concepts []Concept
	if err := readJSONFile(path, &concepts); err != nil {
		concepts = defaultConcepts()
		if os.IsNotExist(err) {
			if werr := writeJSONFile(path, concepts); werr != nil {
				logger.Error("failed to write default tutor content", "path", path, "error", werr)
			} else {
				logger.Info("created default tutor content", "path", path, "concepts", len(concepts))
			}
		} else {
			logger.Error("failed to load tutor content, using default", "path", path, "error", err)
		}
	}
	return &ConceptTable{concepts: concepts, logger: logger}
}

// Concepts returns all concepts in declaration order.
func (t *ConceptTable) Concepts() []Concept {
	return t.concepts
}

// ByID returns the concept with the given id.
func (t *ConceptTable) ByID(id string) (Concept, bool) {
	for _, c := range t.concepts {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

// Listing renders "id (Title)" pairs for prompt embedding.
func (t *ConceptTable) Listing() string {
	if len(t.concepts) == 0 {
		return "No concepts available."
	}
	parts := make([]string, 0, len(t.concepts))
	for _, c := range t.concepts {
		parts = append(parts, c.ID+" ("+c.Title+")")
	}
	return strings.Join(parts, ", ")
}

func defaultConcepts() []Concept {
	return []Concept{
		{ID: "variables", Title: "Variables and Types", Summary: "A variable names a piece of data; its type decides what operations make sense on it.", SampleQuestion: "What happens if you add a number to a string?"},
		{ID: "loops", Title: "Loops", Summary: "A loop repeats a block of code until a condition changes, letting you process many items with one rule.", SampleQuestion: "When would a loop never terminate?"},
		{ID: "functions", Title: "Functions", Summary: "A function packages a computation behind a name and parameters so it can be reused and tested in isolation.", SampleQuestion: "Why do functions take parameters instead of reading globals?"},
		{ID: "recursion", Title: "Recursion", Summary: "A recursive function solves a problem by calling itself on a smaller piece of the same problem until a base case stops it.", SampleQuestion: "What two parts does every correct recursive function need?"},
	}
}
