package ai

import "context"

// Options tunes a single generation call.
type Options struct {
	// Temperature above zero keeps answers non-deterministic so repeated
	// similar questions do not collapse to one cached reply.
	Temperature float64
	// JSONResponse asks the provider for a JSON-object-shaped reply.
	JSONResponse bool
}

// TextGenerator produces text from a system and user prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}
