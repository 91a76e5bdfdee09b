package consultation

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageAnalyze    Stage = "Analyze"
	StageRecommend  Stage = "Recommend"
	StageExercise   Stage = "Exercise"
	StageDisclaimer Stage = "Disclaimer"
)

// Stages lists the pipeline steps in execution order.
var Stages = []Stage{StageAnalyze, StageRecommend, StageExercise, StageDisclaimer}

// State accumulates the output of each stage. It is passed by value: every
// stage returns a new State and never mutates the one it received.
type State struct {
	Problem         string `json:"problem"`
	Analysis        string `json:"analysis"`
	Recommendations string `json:"recommendations"`
	Exercises       string `json:"exercises"`
	Disclaimer      string `json:"disclaimer"`
}

func NewState(problem string) State {
	return State{Problem: problem}
}

func (s State) WithAnalysis(v string) State {
	s.Analysis = v
	return s
}

func (s State) WithRecommendations(v string) State {
	s.Recommendations = v
	return s
}

func (s State) WithExercises(v string) State {
	s.Exercises = v
	return s
}

func (s State) WithDisclaimer(v string) State {
	s.Disclaimer = v
	return s
}

// Complete reports whether every stage has produced its field.
func (s State) Complete() bool {
	return s.Analysis != "" && s.Recommendations != "" && s.Exercises != "" && s.Disclaimer != ""
}

// Document renders the combined markdown stored on the consultation record.
func (s State) Document() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Analysis:**\n%s\n\n", strings.TrimSpace(s.Analysis))
	fmt.Fprintf(&sb, "**Recommendations:**\n%s\n\n", strings.TrimSpace(s.Recommendations))
	fmt.Fprintf(&sb, "**Exercises:**\n%s\n\n", strings.TrimSpace(s.Exercises))
	sb.WriteString(s.Disclaimer)
	return sb.String()
}
