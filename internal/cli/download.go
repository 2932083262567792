package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yttools/internal/logging"
	"yttools/internal/pipeline"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "download <url> [keywords...]",
		Aliases: []string{"dl"},
		Short:   "List or download videos from a channel or playlist",
		Example: `  # List all full videos
  yttools download https://www.youtube.com/@channel

  # Videos with 'crossing' in the title
  yttools download https://www.youtube.com/@channel crossing

  # Download at 720p max
  yttools download https://www.youtube.com/@channel -d crossing -r 720`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDownload,
	}

	cmd.Flags().BoolP("download", "d", false, "Download (default: list only)")
	cmd.Flags().IntP("max", "n", 0, "Maximum number of videos")
	cmd.Flags().StringP("output", "o", pipeline.DefaultDownloadDir, "Output directory")
	cmd.Flags().StringP("resolution", "r", pipeline.DefaultResolution, "Max resolution: 720, 1080, or best")
	cmd.Flags().Bool("shorts", false, "Include shorts (<=60s)")
	cmd.Flags().Bool("only-shorts", false, "Only shorts")

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	download, _ := cmd.Flags().GetBool("download")
	max, _ := cmd.Flags().GetInt("max")
	output, _ := cmd.Flags().GetString("output")
	resolution, _ := cmd.Flags().GetString("resolution")
	shorts, _ := cmd.Flags().GetBool("shorts")
	onlyShorts, _ := cmd.Flags().GetBool("only-shorts")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log := logging.New(verbose)

	cfg := pipeline.DownloadConfig{
		URL:        args[0],
		Keywords:   args[1:],
		Download:   download,
		Max:        max,
		OutputDir:  output,
		Resolution: resolution,
		Shorts:     shorts,
		OnlyShorts: onlyShorts,

		YtdlpPath: getenvDefault("YTTOOLS_YTDLP", "yt-dlp"),
		Logf:      log.Debugf,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.RunDownload(cmd.Context(), cfg)
}
