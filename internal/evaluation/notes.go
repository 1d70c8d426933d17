package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"thepass/internal/kitchen"
	"thepass/internal/models"
)

const dishPlaceholder = "{dish}"

var notePools = map[models.Grade][]string{
	models.GradeS: {
		"Flawless execution, Chef.",
		"That is what perfection looks like.",
		"{dish} looked better than the photo.",
		"The guests are going to love this.",
		"Pure art. impeccable.",
	},
	models.GradeA: {
		"Solid service. Good pace.",
		"Acceptable standard. Keep it up.",
		"Good, but watch the details.",
		"Nice work on that {dish}.",
		"Respectable. Next check.",
	},
	models.GradeB: {
		"Sloppy. Tighten up.",
		"You're falling behind standards.",
		"{dish} was barely passable.",
		"Watch your plating, Chef.",
		"Don't let that happen again.",
	},
	models.GradeF: {
		"Are you trying to shut us down?",
		"Absolutely disgraceful.",
		"I wouldn't feed that {dish} to a dog.",
		"Get it together or get out.",
		"Embarrassing.",
	},
}

// NoteWriter writes the expeditor's remark for a service log entry
type NoteWriter interface {
	Note(grade models.Grade, dishName string) string
}

// PoolNotes draws notes from the fixed per-grade pools
type PoolNotes struct {
	rng kitchen.Random
}

// NewPoolNotes creates a note writer drawing from rng
func NewPoolNotes(rng kitchen.Random) *PoolNotes {
	return &PoolNotes{rng: rng}
}

// Note picks a remark for grade; unknown grades use the B pool.
func (p *PoolNotes) Note(grade models.Grade, dishName string) string {
	pool, ok := notePools[grade]
	if !ok {
		pool = notePools[models.GradeB]
	}
	if dishName == "" {
		dishName = "dish"
	}
	return strings.ReplaceAll(pool[p.rng.Intn(len(pool))], dishPlaceholder, dishName)
}

// Annotator produces richer commentary for a served dish out of band
type Annotator interface {
	Annotate(ctx context.Context, entry models.ServiceLogEntry, issues []string) (string, error)
}

// LLMAnnotator asks a language model to play a head chef reacting to a plate.
// Its output replaces the pool note once it arrives; on error the pool note stays.
type LLMAnnotator struct {
	model     llms.Model
	maxTokens int
}

// NewLLMAnnotator creates an annotator backed by model
func NewLLMAnnotator(model llms.Model) *LLMAnnotator {
	return &LLMAnnotator{model: model, maxTokens: 48}
}

// Annotate implements Annotator
func (a *LLMAnnotator) Annotate(ctx context.Context, entry models.ServiceLogEntry, issues []string) (string, error) {
	prompt := buildNotePrompt(entry, issues)

	text, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt,
		llms.WithMaxTokens(a.maxTokens),
		llms.WithTemperature(0.9),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate note: %w", err)
	}

	text = strings.Trim(strings.TrimSpace(text), `"`)
	if text == "" {
		return "", fmt.Errorf("empty note from model")
	}
	return text, nil
}

func buildNotePrompt(entry models.ServiceLogEntry, issues []string) string {
	var b strings.Builder
	b.WriteString("You are a demanding head chef standing at the pass during service. ")
	b.WriteString("React to the plate below in one short sentence, no more than 15 words. ")
	b.WriteString("Do not use quotation marks.\n\n")
	fmt.Fprintf(&b, "Dish: %s\n", entry.DishName)
	fmt.Fprintf(&b, "Grade: %s\n", entry.Grade)
	if len(issues) == 0 {
		b.WriteString("Issues: none\n")
	} else {
		fmt.Fprintf(&b, "Issues: %s\n", strings.Join(issues, ", "))
	}
	return b.String()
}
