package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"myzai/internal/service"
	"myzai/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the music assistant",
	Long:  `Start a line-based chat with the myzAI assistant. Type /quit or press Ctrl-D to leave.`,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if err := redirectLog("stderr"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	studio, err := newLocalStudio(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	state := ui.NewChatState()
	for _, m := range state.View().Messages {
		fmt.Fprintf(out, "myzAI: %s\n", m.Content)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" || line == "/exit" {
			return nil
		}

		history, ok := state.Start(line)
		if !ok {
			continue
		}
		res, err := studio.Chat(ctx, cliSessionID, &service.ChatRequest{Message: line, History: history})
		reply := ""
		if err != nil {
			log.Error().Err(err).Msg("chat request failed")
		} else {
			reply = res.Reply.Content
		}
		state.Finish(reply, err)

		msgs := state.View().Messages
		fmt.Fprintf(out, "myzAI: %s\n", msgs[len(msgs)-1].Content)

		if ctx.Err() != nil {
			return nil
		}
	}
}
