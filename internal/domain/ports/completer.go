package ports

import "context"

// Completer is the single capability an LLM vendor exposes: turn a
// prompt into text. One implementation exists per vendor.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
