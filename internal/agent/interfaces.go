package agent

import "context"

// AIClient is the generation capability the production core hands prompts
// to. Failures surface as-is; callers decide whether to retry or skip.
type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteJSON asks the model to respond with a single JSON object.
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}
