package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{name: "plain message", input: "hello there", want: Command{Kind: CommandMessage, Text: "hello there"}},
		{name: "message trimmed", input: "  hi  ", want: Command{Kind: CommandMessage, Text: "hi"}},
		{name: "exit", input: "/exit", want: Command{Kind: CommandExit}},
		{name: "quit alias", input: "/quit", want: Command{Kind: CommandExit}},
		{name: "exit uppercase", input: "/EXIT", want: Command{Kind: CommandExit}},
		{name: "exit mixed case", input: "/Exit", want: Command{Kind: CommandExit}},
		{name: "clear", input: "/clear", want: Command{Kind: CommandClear}},
		{name: "stats", input: "/stats", want: Command{Kind: CommandStats}},
		{name: "history", input: "/history", want: Command{Kind: CommandHistory}},
		{name: "help", input: "/help", want: Command{Kind: CommandHelp}},
		{name: "command with trailing words", input: "/stats please", want: Command{Kind: CommandStats}},
		{name: "unknown command", input: "/frobnicate", want: Command{Kind: CommandUnknown, Text: "/frobnicate"}},
		{name: "bare slash", input: "/", want: Command{Kind: CommandUnknown, Text: "/"}},
		{name: "slash inside text", input: "what is 1/2", want: Command{Kind: CommandMessage, Text: "what is 1/2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.input))
		})
	}
}
