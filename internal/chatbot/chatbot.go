package chatbot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"LocalChat/internal/memory"
	"LocalChat/internal/model"
	"LocalChat/internal/prompt"
	"LocalChat/internal/transcript"
)

// historyLimit is how many recorded turns /history prints.
const historyLimit = 10

// Bot owns all state of one interactive session: the conversation window,
// the generator, the per-run transcript, and the I/O streams of the loop.
type Bot struct {
	generator model.Generator
	window    *memory.Window
	template  *prompt.Template
	store     *transcript.Store
	logger    *slog.Logger
	sessionID string
	in        io.Reader
	out       io.Writer

	turnCounter    metric.Int64Counter
	evictCounter   metric.Int64Counter
	failureCounter metric.Int64Counter
}

// New creates a Bot reading from in and printing to out.
func New(gen model.Generator, window *memory.Window, tmpl *prompt.Template, store *transcript.Store, logger *slog.Logger, meter metric.Meter, in io.Reader, out io.Writer) (*Bot, error) {
	turnCounter, err := meter.Int64Counter(
		"chat.turns",
		metric.WithDescription("Completed conversation turns"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create turn counter: %w", err)
	}

	evictCounter, err := meter.Int64Counter(
		"chat.memory.evictions",
		metric.WithDescription("Turns evicted from the conversation window"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create eviction counter: %w", err)
	}

	failureCounter, err := meter.Int64Counter(
		"chat.generation.failures",
		metric.WithDescription("Failed generation attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create failure counter: %w", err)
	}

	return &Bot{
		generator:      gen,
		window:         window,
		template:       tmpl,
		store:          store,
		logger:         logger,
		sessionID:      uuid.NewString(),
		in:             in,
		out:            out,
		turnCounter:    turnCounter,
		evictCounter:   evictCounter,
		failureCounter: failureCounter,
	}, nil
}

// SessionID returns the identifier of this run's session.
func (b *Bot) SessionID() string { return b.sessionID }

// Run drives the read-eval-print loop until /exit or end of input.
func (b *Bot) Run(ctx context.Context) error {
	b.printWelcome()

	scanner := bufio.NewScanner(b.in)
	for {
		fmt.Fprint(b.out, "You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		cmd := ParseCommand(input)
		switch cmd.Kind {
		case CommandExit:
			b.printFarewell()
			return nil

		case CommandClear:
			b.window.Clear()
			fmt.Fprintln(b.out, "Conversation memory cleared.")

		case CommandStats:
			b.printStats()

		case CommandHistory:
			b.printHistory()

		case CommandHelp:
			b.printHelp()

		case CommandUnknown:
			fmt.Fprintf(b.out, "Unknown command: %s\n", cmd.Text)
			fmt.Fprintln(b.out, "Type /help to see available commands.")

		case CommandMessage:
			b.handleMessage(ctx, cmd.Text)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	// End of input behaves like /exit.
	fmt.Fprintln(b.out)
	b.printFarewell()
	return nil
}

// handleMessage runs one generate-append cycle. A failed generation leaves
// the window untouched and the session running.
func (b *Bot) handleMessage(ctx context.Context, input string) {
	fullPrompt := b.template.Build(b.window.Context(), input)

	response, err := b.generator.Generate(ctx, fullPrompt)
	if err != nil {
		b.logger.Error("generation failed", "error", err)
		b.failureCounter.Add(ctx, 1)
		fmt.Fprintln(b.out, "Sorry, something went wrong while generating a response. Please try again.")
		return
	}

	fmt.Fprintf(b.out, "Bot: %s\n\n", response)

	turn := memory.Turn{User: input, Bot: response}
	if evicted := b.window.Append(turn); evicted > 0 {
		b.evictCounter.Add(ctx, int64(evicted))
	}
	b.turnCounter.Add(ctx, 1)

	if err := b.store.Record(b.sessionID, turn); err != nil {
		b.logger.Warn("failed to record turn", "error", err)
	}
}

func (b *Bot) printWelcome() {
	info := b.generator.Info()
	fmt.Fprintln(b.out, "=== LocalChat ===")
	fmt.Fprintf(b.out, "Session: %s\n", shortID(b.sessionID))
	fmt.Fprintf(b.out, "Model: %s (%s)\n", info.Model, info.Device)
	fmt.Fprintln(b.out, "Type /help for commands, /exit to quit.")
	if b.template.Greeting != "" {
		fmt.Fprintf(b.out, "\n%s\n", b.template.Greeting)
	}
	fmt.Fprintln(b.out)
}

func (b *Bot) printFarewell() {
	fmt.Fprintln(b.out, "Goodbye!")
	if total := b.window.TotalTurns(); total > 0 {
		fmt.Fprintf(b.out, "Total conversation turns: %d\n", total)
	}
}

func (b *Bot) printStats() {
	stats := b.window.Stats()
	info := b.generator.Info()

	full := "no"
	if stats.BufferFull {
		full = "yes"
	}

	fmt.Fprintln(b.out, "Chatbot statistics:")
	fmt.Fprintf(b.out, "  Total conversation turns: %d\n", stats.TotalTurns)
	fmt.Fprintf(b.out, "  Memory window: %d/%d\n", stats.BufferSize, stats.BufferCap)
	fmt.Fprintf(b.out, "  Window full: %s\n", full)
	fmt.Fprintf(b.out, "  Model: %s\n", info.Model)
	fmt.Fprintf(b.out, "  Device: %s\n", info.Device)

	if count, err := b.store.Count(); err != nil {
		b.logger.Warn("failed to count recorded turns", "error", err)
	} else {
		fmt.Fprintf(b.out, "  Turns recorded this run: %d\n", count)
	}
}

func (b *Bot) printHistory() {
	entries, err := b.store.Recent(historyLimit)
	if err != nil {
		b.logger.Error("failed to load history", "error", err)
		fmt.Fprintln(b.out, "Could not load history.")
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(b.out, "No turns recorded yet.")
		return
	}

	fmt.Fprintf(b.out, "Last %d turns:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(b.out, "[%s] You: %s\n", e.CreatedAt.Format("15:04:05"), e.User)
		fmt.Fprintf(b.out, "%s Bot: %s\n", strings.Repeat(" ", 10), e.Bot)
	}
}

func (b *Bot) printHelp() {
	fmt.Fprintln(b.out, "Available commands:")
	fmt.Fprintln(b.out, "  /exit, /quit  - Exit the chatbot")
	fmt.Fprintln(b.out, "  /clear        - Clear the conversation memory")
	fmt.Fprintln(b.out, "  /stats        - Show memory and model statistics")
	fmt.Fprintln(b.out, "  /history      - Show turns recorded this run")
	fmt.Fprintln(b.out, "  /help         - Show this help message")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
