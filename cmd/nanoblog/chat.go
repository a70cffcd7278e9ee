package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/nanobanana/nanoblog/internal/ai"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the blog assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			assistant, err := ai.NewAssistant(env.cfg.AI)
			if err != nil {
				if errors.Is(err, ai.ErrNotConfigured) {
					return fmt.Errorf("assistant not configured: set ai.api_key in the config or NANOBLOG_AI_API_KEY")
				}
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "you> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "bye",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			fmt.Println("Chatting with the blog assistant. Type /quit to leave.")

			var history []ai.Message
			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}

				line = strings.TrimSpace(line)
				switch line {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/clear":
					history = nil
					fmt.Println("History cleared.")
					continue
				}

				history = assistant.Send(cmd.Context(), history, line)
				if len(history) > 0 {
					fmt.Printf("\nassistant> %s\n\n", history[len(history)-1].Content)
				}
			}
		},
	}
}
