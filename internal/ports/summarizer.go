package ports

import "context"

// Summarizer turns an assembled prompt into a natural-language summary.
// Implemented by the Gemini client; faked in tests.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
