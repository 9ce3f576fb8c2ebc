package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"myzai/internal/pkg/logger"
	"myzai/internal/ui"
)

var studioSaveDir string

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Open the terminal studio",
	Long: `Open the full-screen studio with Lyrics (F1), Album Art (F2) and Assistant (F3) pages.
Logs are discarded unless log.output is file; the terminal belongs to the studio.`,
	RunE: runStudio,
}

func init() {
	rootCmd.AddCommand(studioCmd)

	studioCmd.Flags().StringVar(&studioSaveDir, "save-dir", ".", "directory for downloaded covers")
}

func runStudio(cmd *cobra.Command, args []string) error {
	if logCfg := GetConfig().Log; logCfg.Output != "file" {
		logCfg.Output = "discard"
		if err := logger.Init(&logCfg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	studio, err := newLocalStudio(ctx)
	if err != nil {
		return err
	}
	return ui.Run(ctx, studio, studioSaveDir)
}
