package chatbot

import "strings"

// CommandKind enumerates the recognized forms of one input line.
type CommandKind int

const (
	// CommandMessage is plain chat text destined for the model.
	CommandMessage CommandKind = iota
	CommandExit
	CommandClear
	CommandStats
	CommandHistory
	CommandHelp
	// CommandUnknown is a slash-prefixed line that matches nothing above.
	CommandUnknown
)

// Command is one parsed line of user input.
type Command struct {
	Kind CommandKind
	Text string // message body for CommandMessage, raw input for CommandUnknown
}

// ParseCommand classifies an input line. Command matching is
// case-insensitive and keyed on the first whitespace-separated field.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: CommandMessage, Text: line}
	}

	switch strings.ToLower(strings.Fields(line)[0]) {
	case "/exit", "/quit":
		return Command{Kind: CommandExit}
	case "/clear":
		return Command{Kind: CommandClear}
	case "/stats":
		return Command{Kind: CommandStats}
	case "/history":
		return Command{Kind: CommandHistory}
	case "/help":
		return Command{Kind: CommandHelp}
	default:
		return Command{Kind: CommandUnknown, Text: line}
	}
}
