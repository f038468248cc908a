/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/longkey1/sunyata/internal/render"
	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/relay"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var chatFlags requestFlags

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive assistant session",
	Long: `Start an interactive session in the terminal. Every line you enter is sent
with the current language, task type, requirements and temperature, which you
can change with slash commands. Type '/help' for the list.

The session lives until you exit; '/history' shows its most recent entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, system, err := loadConfig()
		if err != nil {
			return err
		}
		req, err := chatFlags.request(cmd, cfg, "")
		if err != nil {
			return err
		}

		a, err := newAssistant(cfg, system, newLogger(false))
		if err != nil {
			return err
		}

		state := &chatState{
			assistant: a,
			sess:      session.NewSession(),
			request:   req,
			out:       os.Stdout,
			errOut:    os.Stderr,
		}
		return runInteractiveMode(cmd.Context(), state)
	},
}

// chatState is the REPL's current form.
type chatState struct {
	assistant *assistant.Assistant
	sess      *session.Session
	request   assistant.Request
	out       io.Writer
	errOut    io.Writer
}

// runInteractiveMode reads lines until /exit or EOF.
func runInteractiveMode(ctx context.Context, st *chatState) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(st.errOut, render.TitleStyle.Render(fmt.Sprintf("=== Sunyata Coding Assistant [%s] ===", st.sess.GetShortID())))
	st.printSettings()
	fmt.Fprintln(st.errOut, render.MutedStyle.Render("Type '/help' for commands, '/exit' or 'Ctrl+D' to quit"))
	fmt.Fprintln(st.errOut)

	for {
		input, err := line.Prompt("You> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(st.errOut, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if !st.handleCommand(ctx, input) {
				return nil
			}
			continue
		}
		st.submit(ctx, sunyata.ActionGenerate, input)
	}
}

// submit sends one query with the current settings and streams the answer.
func (st *chatState) submit(ctx context.Context, action sunyata.Action, query string) {
	req := st.request
	req.Query = query
	req.Action = action

	if err := st.assistant.Validate(req); err != nil {
		if errors.Is(err, prompt.ErrEmptyBody) {
			fmt.Fprintln(st.errOut, render.WarningStyle.Render("Please enter your code or query first!"))
			return
		}
		fmt.Fprintln(st.errOut, render.ErrorStyle.Render("Error: "+err.Error()))
		return
	}

	fmt.Fprint(st.out, "\n", render.PromptStyle.Render("Assistant>"), " ")
	if _, err := st.assistant.Submit(ctx, st.sess, req, func(fragment string) {
		fmt.Fprint(st.out, fragment)
	}); err != nil {
		fmt.Fprintln(st.errOut, render.ErrorStyle.Render("Error: "+err.Error()))
		return
	}
	fmt.Fprint(st.out, "\n\n")
}

// handleCommand processes slash commands.
// Returns true to continue the loop, false to exit.
func (st *chatState) handleCommand(ctx context.Context, input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "/help", "/h":
		fmt.Fprintln(st.errOut, "\nAvailable commands:")
		fmt.Fprintln(st.errOut, "  /help, /h             - Show this help message")
		fmt.Fprintln(st.errOut, "  /settings, /s         - Show the current settings")
		fmt.Fprintln(st.errOut, "  /history              - Show the most recent interactions")
		fmt.Fprintln(st.errOut, "  /language <name>      - Set the language ("+joinOptions(sunyata.Languages)+")")
		fmt.Fprintln(st.errOut, "  /task <name>          - Set the task type ("+joinOptions(sunyata.TaskTypes)+")")
		fmt.Fprintln(st.errOut, "  /temp <0.0-1.0>       - Set the creativity level")
		fmt.Fprintln(st.errOut, "  /req <name>           - Toggle a requirement ("+strings.Join(prompt.RequirementNames, ", ")+")")
		fmt.Fprintln(st.errOut, "  /analyze <code>       - Analyze code")
		fmt.Fprintln(st.errOut, "  /debug <code>         - Debug code")
		fmt.Fprintln(st.errOut, "  /document <code>      - Document code")
		fmt.Fprintln(st.errOut, "  /exit, /quit          - Exit interactive mode")
		fmt.Fprintln(st.errOut, "  Ctrl+D                - Exit interactive mode")
		fmt.Fprintln(st.errOut)

	case "/settings", "/s":
		st.printSettings()

	case "/history":
		st.printHistory()

	case "/language", "/lang":
		lang, err := sunyata.ParseLanguage(arg)
		if err != nil {
			st.warn(err)
			break
		}
		st.request.Language = lang
		st.printSettings()

	case "/task":
		task, err := sunyata.ParseTaskType(arg)
		if err != nil {
			st.warn(err)
			break
		}
		st.request.TaskType = task
		st.printSettings()

	case "/temp", "/temperature":
		t, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			st.warn(fmt.Errorf("invalid temperature %q", arg))
			break
		}
		if err := relay.ValidateTemperature(float32(t)); err != nil {
			st.warn(err)
			break
		}
		st.request.Temperature = float32(t)
		st.printSettings()

	case "/req":
		if arg == "" {
			st.printSettings()
			break
		}
		if err := st.request.Requirements.Toggle(arg); err != nil {
			st.warn(err)
			break
		}
		st.printSettings()

	case "/analyze", "/debug", "/document":
		action, _ := sunyata.ParseAction(strings.TrimPrefix(name, "/"))
		st.submit(ctx, action, arg)

	case "/exit", "/quit", "/q":
		fmt.Fprintln(st.errOut, "Goodbye!")
		return false

	default:
		fmt.Fprintf(st.errOut, "Unknown command: %s (type '/help' for available commands)\n", name)
	}
	return true
}

func (st *chatState) warn(err error) {
	fmt.Fprintln(st.errOut, render.WarningStyle.Render(err.Error()))
}

func (st *chatState) printSettings() {
	reqs := strings.Join(st.request.Requirements.Phrases(), ", ")
	if reqs == "" {
		reqs = "none"
	}
	fmt.Fprintln(st.errOut, render.MutedStyle.Render(fmt.Sprintf(
		"Language: %s | Task: %s | Temperature: %.1f | Requirements: %s",
		st.request.Language, st.request.TaskType, st.request.Temperature, reqs)))
}

func (st *chatState) printHistory() {
	recent := st.assistant.Recent(st.sess)
	if len(recent) == 0 {
		fmt.Fprintln(st.errOut, "No interactions yet.")
		return
	}
	fmt.Fprintf(st.errOut, "\n%s (%d total)\n", render.TitleStyle.Render("Conversation History"), st.sess.Len())
	for _, e := range recent {
		fmt.Fprintf(st.errOut, "\n%s\n", render.PromptStyle.Render(fmt.Sprintf("Interaction %d", e.Number)))
		fmt.Fprintf(st.errOut, "Query: %s\n", e.Input)
		fmt.Fprintf(st.errOut, "Response: %s\n", e.Response)
	}
	fmt.Fprintln(st.errOut)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatFlags.register(chatCmd)
	// One-shot only; the REPL uses slash commands instead.
	chatCmd.Flags().MarkHidden("editor")
	chatCmd.Flags().MarkHidden("action")
}
