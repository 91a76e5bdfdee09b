package consultation

import "fmt"

const Disclaimer = "⚠️ IMPORTANT DISCLAIMER:\n" +
	"This information is for educational purposes only and is not a substitute for professional medical advice, " +
	"diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with " +
	"any questions you may have regarding a medical condition."

const analysisTemplate = `You are a helpful AI health assistant. Analyze the following health problem:

Problem: %s

Provide a brief analysis of the condition. Be empathetic and understanding.
Important: This is for informational purposes only and not a substitute for professional medical advice.`

const recommendationTemplate = `Based on this health problem: %s

And this analysis: %s

Suggest general wellness recommendations and over-the-counter remedies if appropriate.
Focus on lifestyle changes, diet, and general wellness tips.
Do NOT prescribe prescription medications.
Be specific but safe in your recommendations.`

const exerciseTemplate = `For someone with: %s

Suggest appropriate exercises or physical activities that might help.
Include:
1. Gentle exercises suitable for beginners
2. Breathing exercises if relevant
3. Stretching routines
4. Duration and frequency recommendations

Make sure exercises are safe and appropriate for the condition.`

const quickRecommendationTemplate = `Based on the following patient status, suggest a suitable general recommendation.
Do NOT prescribe prescription medications.

Patient status: %s`

func AnalysisPrompt(s State) string {
	return fmt.Sprintf(analysisTemplate, s.Problem)
}

func RecommendationPrompt(s State) string {
	return fmt.Sprintf(recommendationTemplate, s.Problem, s.Analysis)
}

// ExercisePrompt reads only the problem, so it may run alongside the
// recommendation stage.
func ExercisePrompt(s State) string {
	return fmt.Sprintf(exerciseTemplate, s.Problem)
}

func QuickRecommendationPrompt(status string) string {
	return fmt.Sprintf(quickRecommendationTemplate, status)
}
