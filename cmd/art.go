package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"myzai/internal/model"
)

var (
	artPrompt string
	artOut    string
)

var artCmd = &cobra.Command{
	Use:   "art",
	Short: "Paint a square album cover",
	Long: `Generate a 1:1 album cover from a description and save it to disk.
Without --out the file is named myzAI-art-<unix ms>.<ext> in the current directory.`,
	Example: `  myzai art --prompt "neon city skyline at dusk, synthwave"`,
	RunE:    runArt,
}

func init() {
	rootCmd.AddCommand(artCmd)

	flags := artCmd.Flags()
	flags.StringVarP(&artPrompt, "prompt", "p", "", "cover description")
	flags.StringVarP(&artOut, "out", "o", "", "output file")
	_ = artCmd.MarkFlagRequired("prompt")
}

func runArt(cmd *cobra.Command, args []string) error {
	if err := redirectLog("stderr"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	studio, err := newLocalStudio(ctx)
	if err != nil {
		return err
	}

	res, err := studio.GenerateAlbumArt(ctx, cliSessionID, artPrompt)
	if err != nil {
		return err
	}

	path := artOut
	if path == "" {
		path = model.ArtFileName(res.Image.MIMEType, time.Now())
	}
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("failed to save cover: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
