package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yttools/internal/logging"
	"yttools/internal/pipeline"
)

func newTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transcribe <source>",
		Aliases: []string{"tr"},
		Short:   "Transcribe a YouTube video or local WAV file",
		Long: `Download audio from YouTube (or take a local WAV file) and transcribe it.
Writes <name>.txt with the plain text and <name>.json with the full result.`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscribe,
	}

	cmd.Flags().String("outdir", pipeline.DefaultTranscribeDir, "Output directory")
	cmd.Flags().String("model", getenvDefault("YTTOOLS_MODEL", pipeline.DefaultModelRepo), "Transcription model repo")
	cmd.Flags().Float64("chunk-seconds", pipeline.DefaultChunkSeconds, "Chunk size in seconds")
	cmd.Flags().Float64("overlap-seconds", pipeline.DefaultOverlapSeconds, "Overlap between chunks in seconds")

	return cmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	outdir, _ := cmd.Flags().GetString("outdir")
	model, _ := cmd.Flags().GetString("model")
	chunk, _ := cmd.Flags().GetFloat64("chunk-seconds")
	overlap, _ := cmd.Flags().GetFloat64("overlap-seconds")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log := logging.New(verbose)

	cfg := pipeline.TranscribeConfig{
		Source: args[0],
		OutDir: outdir,

		ModelRepo:      model,
		ChunkSeconds:   chunk,
		OverlapSeconds: overlap,

		YtdlpPath:    getenvDefault("YTTOOLS_YTDLP", "yt-dlp"),
		ParakeetPath: getenvDefault("YTTOOLS_PARAKEET", "parakeet-mlx"),
		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		Logf:         log.Debugf,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.RunTranscribe(cmd.Context(), cfg)
}
