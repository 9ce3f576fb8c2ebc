package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"myzai/internal/model"
)

var lyricsOpts model.LyricsConfig

var lyricsCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "Write song lyrics",
	Example: `  myzai lyrics --topic "summer road trip" --genre Rock --mood Nostalgic`,
	RunE: runLyrics,
}

func init() {
	rootCmd.AddCommand(lyricsCmd)

	flags := lyricsCmd.Flags()
	flags.StringVarP(&lyricsOpts.Topic, "topic", "t", "", "what the song is about")
	flags.StringVarP(&lyricsOpts.Genre, "genre", "g", model.DefaultGenre, "song genre")
	flags.StringVarP(&lyricsOpts.Mood, "mood", "m", model.DefaultMood, "song mood")
	flags.StringVarP(&lyricsOpts.Structure, "structure", "s", model.DefaultStructure, "song structure")
	_ = lyricsCmd.MarkFlagRequired("topic")
}

func runLyrics(cmd *cobra.Command, args []string) error {
	if err := redirectLog("stderr"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	studio, err := newLocalStudio(ctx)
	if err != nil {
		return err
	}

	res, err := studio.GenerateLyrics(ctx, cliSessionID, lyricsOpts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Lyrics)
	return nil
}
