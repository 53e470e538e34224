package port

import "context"

// AnswerGenerator forwards a fully assembled prompt to the external
// generative-AI service and returns the raw generated text. No retry,
// streaming, or token-budget management happens behind this interface.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
