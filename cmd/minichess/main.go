// Package main implements local play against the built-in opponent in
// an interactive terminal session.
package main

import (
	"fmt"
	"os"

	"minichess/internal/cli"
	"minichess/internal/service"
	clitransport "minichess/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	svc, err := service.New(nil)
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	// The view prints its own prompts, so readline's stays empty
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "",
		HistoryFile:     os.TempDir() + "/.minichess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to initialize input: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view := cli.New(rl, os.Stdout)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		view.SetTheme(cli.ThemeBrown)
		view.ToggleGlyphs()
	}

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	handler.Run() // All game loop logic is in the handler
}
