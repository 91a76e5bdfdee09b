package constant

// InsufficientGroundingAnswer is returned, without calling the model, when
// the similarity index has no reference material for a question.
const InsufficientGroundingAnswer = "I could not find any reference material related to your question, so I cannot answer it reliably. Please consult a healthcare professional."

const (
	RagStageRetrieve = "Retrieve"
	RagStageGenerate = "Generate"
)
