package prompt

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultSystem = "You are a helpful assistant. Answer the user's questions clearly and concisely."

// Template holds the instruction preamble used to condition every
// generation, plus an optional greeting shown when the session starts.
type Template struct {
	System   string `toml:"system"`
	Greeting string `toml:"greeting"`
}

// Default returns the built-in template.
func Default() *Template {
	return &Template{System: defaultSystem}
}

// Load reads a template from a TOML file. The `system` key is required.
func Load(path string) (*Template, error) {
	var t Template
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", path, err)
	}
	if strings.TrimSpace(t.System) == "" {
		return nil, fmt.Errorf("template %s: missing required 'system' field", path)
	}
	return &t, nil
}

// Build assembles the full prompt: instruction preamble, then the
// conversation context (when any), then the current input with a trailing
// Assistant cue for the model to complete.
func (t *Template) Build(context, input string) string {
	var b strings.Builder
	b.WriteString(t.System)
	b.WriteString("\n\n")
	if context != "" {
		b.WriteString(context)
		b.WriteByte('\n')
	}
	b.WriteString("Human: ")
	b.WriteString(input)
	b.WriteString("\nAssistant:")
	return b.String()
}
