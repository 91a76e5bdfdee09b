package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/llm"
)

// HistoryWindow bounds how many previous entries are folded into one prompt.
const HistoryWindow = 5

const (
	MinMood = 0.0
	MaxMood = 10.0
)

type HistoryItem struct {
	Date     time.Time
	Mood     float64
	Symptoms string
}

type NewEntry struct {
	Description      string
	MoodRating       float64
	SymptomsImproved string
}

func (e NewEntry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return apperror.NewValidationError("description", "must not be empty")
	}
	if e.MoodRating < MinMood || e.MoodRating > MaxMood {
		return apperror.NewValidationError("mood_rating", fmt.Sprintf("must be between %.0f and %.0f", MinMood, MaxMood))
	}
	return nil
}

type FeedbackService struct {
	provider    llm.LLMProvider
	temperature float64
}

func NewFeedbackService(provider llm.LLMProvider, temperature float64) *FeedbackService {
	return &FeedbackService{provider: provider, temperature: temperature}
}

// Feedback makes a single model call over the most recent HistoryWindow
// entries and the new one. It persists nothing.
func (s *FeedbackService) Feedback(ctx context.Context, history []HistoryItem, entry NewEntry) (string, error) {
	if err := entry.Validate(); err != nil {
		return "", err
	}

	prompt := BuildPrompt(RecentWindow(history, HistoryWindow), entry)
	out, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(s.temperature))
	if err != nil {
		return "", apperror.AsProvider("ProgressFeedback", err)
	}
	return out, nil
}

// RecentWindow returns at most n items, newest first. The input is not modified.
func RecentWindow(history []HistoryItem, n int) []HistoryItem {
	sorted := make([]HistoryItem, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func BuildPrompt(window []HistoryItem, entry NewEntry) string {
	var sb strings.Builder

	sb.WriteString("Analyze the patient's progress based on their entries:\n\n")
	sb.WriteString("Previous entries:\n")
	if len(window) == 0 {
		sb.WriteString("- none\n")
	}
	for _, h := range window {
		fmt.Fprintf(&sb, "- %s | mood %.1f/10 | symptoms: %s\n", h.Date.Format("2006-01-02"), h.Mood, h.Symptoms)
	}

	sb.WriteString("\nCurrent entry:\n")
	fmt.Fprintf(&sb, "- Description: %s\n", entry.Description)
	fmt.Fprintf(&sb, "- Mood rating: %.1f/10\n", entry.MoodRating)
	fmt.Fprintf(&sb, "- Symptoms improved: %s\n\n", entry.SymptomsImproved)

	sb.WriteString("Provide encouraging feedback and suggestions for continued improvement.\n")
	sb.WriteString("Note any positive trends or areas that need attention.")

	return sb.String()
}
