package consultation

import (
	"context"
	"fmt"
	"strings"

	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/llm"

	"golang.org/x/sync/errgroup"
)

const DefaultTemperature = 0.7

// Error is returned when a stage fails. Partial holds every field computed
// before the failing stage.
type Error struct {
	Stage   Stage
	Partial State
	Err     *apperror.ProviderError
}

func (e *Error) Error() string {
	return fmt.Sprintf("consultation failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PartialResult exposes the failing stage and the partial state to the HTTP
// error handler.
func (e *Error) PartialResult() interface{} {
	return struct {
		Stage   Stage `json:"stage"`
		Partial State `json:"partial"`
	}{Stage: e.Stage, Partial: e.Partial}
}

type Pipeline struct {
	provider    llm.LLMProvider
	temperature float64
	parallel    bool
}

type Option func(*Pipeline)

func WithTemperature(t float64) Option {
	return func(p *Pipeline) { p.temperature = t }
}

// WithParallel runs Recommend and Exercise concurrently once Analyze is done.
// Fields are still joined in stage order before Disclaimer.
func WithParallel(enabled bool) Option {
	return func(p *Pipeline) { p.parallel = enabled }
}

func NewPipeline(provider llm.LLMProvider, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider:    provider,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes Analyze, Recommend, Exercise and Disclaimer. On failure the
// returned State is the partial state and err is a *Error.
func (p *Pipeline) Run(ctx context.Context, problem string) (State, error) {
	if strings.TrimSpace(problem) == "" {
		return State{}, apperror.NewValidationError("problem_description", "must not be empty")
	}

	state := NewState(problem)

	analysis, err := p.call(ctx, StageAnalyze, AnalysisPrompt(state))
	if err != nil {
		return p.fail(StageAnalyze, state, err)
	}
	state = state.WithAnalysis(analysis)

	if p.parallel {
		state, err = p.runBranchesConcurrently(ctx, state)
	} else {
		state, err = p.runBranchesSequentially(ctx, state)
	}
	if err != nil {
		return state, err
	}

	return state.WithDisclaimer(Disclaimer), nil
}

func (p *Pipeline) runBranchesSequentially(ctx context.Context, state State) (State, error) {
	recommendations, err := p.call(ctx, StageRecommend, RecommendationPrompt(state))
	if err != nil {
		return p.fail(StageRecommend, state, err)
	}
	state = state.WithRecommendations(recommendations)

	exercises, err := p.call(ctx, StageExercise, ExercisePrompt(state))
	if err != nil {
		return p.fail(StageExercise, state, err)
	}
	return state.WithExercises(exercises), nil
}

func (p *Pipeline) runBranchesConcurrently(ctx context.Context, state State) (State, error) {
	var (
		g               errgroup.Group
		recommendations string
		exercises       string
		recommendErr    error
		exerciseErr     error
	)
	recPrompt, exercisePrompt := RecommendationPrompt(state), ExercisePrompt(state)

	g.Go(func() error {
		recommendations, recommendErr = p.call(ctx, StageRecommend, recPrompt)
		return recommendErr
	})
	g.Go(func() error {
		exercises, exerciseErr = p.call(ctx, StageExercise, exercisePrompt)
		return exerciseErr
	})
	_ = g.Wait()

	// Report the earliest failing stage and keep only fields of stages before it.
	if recommendErr != nil {
		return p.fail(StageRecommend, state, recommendErr)
	}
	state = state.WithRecommendations(recommendations)
	if exerciseErr != nil {
		return p.fail(StageExercise, state, exerciseErr)
	}
	return state.WithExercises(exercises), nil
}

func (p *Pipeline) call(ctx context.Context, stage Stage, prompt string) (string, error) {
	out, err := p.provider.Generate(ctx, prompt, llm.WithTemperature(p.temperature))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", apperror.NewProviderError(apperror.KindUnknown, fmt.Errorf("empty output for stage %s", stage))
	}
	return out, nil
}

func (p *Pipeline) fail(stage Stage, partial State, err error) (State, error) {
	return partial, &Error{
		Stage:   stage,
		Partial: partial,
		Err:     apperror.AsProvider(string(stage), err),
	}
}

// Recommend is the single-call quick recommendation for a patient status.
func (p *Pipeline) Recommend(ctx context.Context, status string) (string, error) {
	if strings.TrimSpace(status) == "" {
		return "", apperror.NewValidationError("current_status", "must not be empty")
	}
	out, err := p.call(ctx, "Recommendation", QuickRecommendationPrompt(status))
	if err != nil {
		return "", apperror.AsProvider("Recommendation", err)
	}
	return out, nil
}
