package model

import "context"

// Info identifies the model behind a Generator.
type Info struct {
	Model  string
	Device string
}

// Options control text generation.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Generator produces a completion for a fully assembled prompt. Generation
// is synchronous and may be slow; callers decide how to surface failures.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Info() Info
}
