package consultation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"ai-health-assistant-be/pkg/apperror"
	"ai-health-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// stageStub answers each stage prompt with a fixed marker and can be told to
// fail one stage.
type stageStub struct {
	mu      sync.Mutex
	failOn  Stage
	prompts []string
	temps   []float64
}

func stageOf(prompt string) Stage {
	switch {
	case strings.HasPrefix(prompt, "You are a helpful AI health assistant"):
		return StageAnalyze
	case strings.HasPrefix(prompt, "Based on this health problem"):
		return StageRecommend
	case strings.HasPrefix(prompt, "For someone with"):
		return StageExercise
	}
	return "Recommendation"
}

func (s *stageStub) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (s *stageStub) Generate(_ context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.temps = append(s.temps, llm.NewOptions(opts...).Temperature)

	stage := stageOf(prompt)
	if stage == s.failOn {
		return "", apperror.NewProviderError(apperror.KindRateLimited, errors.New("quota"))
	}
	return "<" + string(stage) + ">", nil
}

func TestPipeline_Run_PopulatesStagesInOrder(t *testing.T) {
	stub := &stageStub{}
	p := NewPipeline(stub)

	state, err := p.Run(context.Background(), "persistent headache")
	require.NoError(t, err)

	assert.Equal(t, "persistent headache", state.Problem)
	assert.Equal(t, "<Analyze>", state.Analysis)
	assert.Equal(t, "<Recommend>", state.Recommendations)
	assert.Equal(t, "<Exercise>", state.Exercises)
	assert.Equal(t, Disclaimer, state.Disclaimer)
	assert.True(t, state.Complete())

	require.Len(t, stub.prompts, 3)
	assert.Equal(t, StageAnalyze, stageOf(stub.prompts[0]))
	assert.Equal(t, StageRecommend, stageOf(stub.prompts[1]))
	assert.Equal(t, StageExercise, stageOf(stub.prompts[2]))
	assert.Contains(t, stub.prompts[1], "<Analyze>", "recommend stage reads the analysis")
	assert.NotContains(t, stub.prompts[2], "<Analyze>", "exercise stage reads only the problem")
	assert.Equal(t, []float64{0.7, 0.7, 0.7}, stub.temps)
}

func TestPipeline_Run_FailureReportsStageAndPartialState(t *testing.T) {
	tests := []struct {
		name   string
		failOn Stage
		want   State
		calls  int
	}{
		{
			name:   "analyze",
			failOn: StageAnalyze,
			want:   State{Problem: "p"},
			calls:  1,
		},
		{
			name:   "recommend",
			failOn: StageRecommend,
			want:   State{Problem: "p", Analysis: "<Analyze>"},
			calls:  2,
		},
		{
			name:   "exercise",
			failOn: StageExercise,
			want:   State{Problem: "p", Analysis: "<Analyze>", Recommendations: "<Recommend>"},
			calls:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stageStub{failOn: tt.failOn}
			state, err := NewPipeline(stub).Run(context.Background(), "p")

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.failOn, perr.Stage)
			assert.Equal(t, tt.want, perr.Partial)
			assert.Equal(t, tt.want, state)
			assert.Empty(t, state.Disclaimer)
			assert.Len(t, stub.prompts, tt.calls)

			var pe *apperror.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, apperror.KindRateLimited, pe.Kind)
			assert.Equal(t, string(tt.failOn), pe.Stage)
		})
	}
}

func TestPipeline_Run_Parallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	stub := &stageStub{}
	state, err := NewPipeline(stub, WithParallel(true)).Run(context.Background(), "back pain")
	require.NoError(t, err)

	assert.Equal(t, "<Analyze>", state.Analysis)
	assert.Equal(t, "<Recommend>", state.Recommendations)
	assert.Equal(t, "<Exercise>", state.Exercises)
	assert.Equal(t, Disclaimer, state.Disclaimer)
	assert.Equal(t, StageAnalyze, stageOf(stub.prompts[0]))
}

func TestPipeline_Run_ParallelRecommendFailureDropsExercise(t *testing.T) {
	defer goleak.VerifyNone(t)

	stub := &stageStub{failOn: StageRecommend}
	state, err := NewPipeline(stub, WithParallel(true)).Run(context.Background(), "p")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StageRecommend, perr.Stage)
	assert.Equal(t, State{Problem: "p", Analysis: "<Analyze>"}, state)
}

func TestPipeline_Run_RejectsEmptyProblem(t *testing.T) {
	stub := &stageStub{}
	_, err := NewPipeline(stub).Run(context.Background(), "   ")

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, stub.prompts)
}

func TestPipeline_Recommend(t *testing.T) {
	stub := &stageStub{}
	out, err := NewPipeline(stub).Recommend(context.Background(), "recovering from flu")
	require.NoError(t, err)
	assert.Equal(t, "<Recommendation>", out)
	assert.Contains(t, stub.prompts[0], "recovering from flu")
}

func TestState_Document(t *testing.T) {
	s := NewState("p").WithAnalysis("a").WithRecommendations("r").WithExercises("e").WithDisclaimer(Disclaimer)

	doc := s.Document()
	assert.True(t, strings.Index(doc, "**Analysis:**") < strings.Index(doc, "**Recommendations:**"))
	assert.True(t, strings.Index(doc, "**Recommendations:**") < strings.Index(doc, "**Exercises:**"))
	assert.True(t, strings.HasSuffix(doc, Disclaimer))
}
