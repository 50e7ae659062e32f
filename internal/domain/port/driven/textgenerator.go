package driven

import "context"

// TextGenerator defines the driven port for the external text-generation
// service. One prompt in, one complete text response out; no streaming.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
