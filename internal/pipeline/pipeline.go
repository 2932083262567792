package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/briandowns/spinner"

	"yttools/internal/domain/videos"
	"yttools/internal/ports"
	"yttools/internal/ports/adapters/ffmpeg"
	"yttools/internal/ports/adapters/parakeet"
	"yttools/internal/ports/adapters/ytdlp"
	"yttools/internal/types"
	"yttools/internal/usecase"
)

// Defaults for the transcription pipeline; overridable per run, never mutated.
const (
	DefaultModelRepo      = "mlx-community/parakeet-tdt-0.6b-v2"
	DefaultChunkSeconds   = 120.0
	DefaultOverlapSeconds = 15.0

	DefaultResolution    = "1080"
	DefaultDownloadDir   = "./downloads"
	DefaultTranscribeDir = "transcriptions"
)

type DownloadConfig struct {
	URL        string
	Keywords   []string
	Download   bool
	Max        int
	OutputDir  string
	Resolution string
	Shorts     bool
	OnlyShorts bool

	YtdlpPath string
	Logf      func(format string, args ...any)
}

func (c DownloadConfig) Validate() error {
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if c.Max < 0 {
		return errors.New("max must be >= 0")
	}
	if c.Resolution != "best" && !isDigits(c.Resolution) {
		return fmt.Errorf("resolution must be %q or a number, got %q", "best", c.Resolution)
	}
	return nil
}

// RunDownload lists, filters and prints matching videos, then downloads them
// when requested. An empty result is an error so the process exits non-zero.
func RunDownload(ctx context.Context, cfg DownloadConfig) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	yt := ytdlp.New(cfg.YtdlpPath)
	if err := yt.CheckInstalled(ctx); err != nil {
		return err
	}

	uc := usecase.New(usecase.Deps{Lister: yt, Downloader: yt})

	fmt.Printf("Fetching videos from %s...\n", cfg.URL)
	entries, err := uc.ListFiltered(ctx, usecase.ListInput{
		URL:        cfg.URL,
		Keywords:   cfg.Keywords,
		Max:        cfg.Max,
		Shorts:     cfg.Shorts,
		OnlyShorts: cfg.OnlyShorts,
	})
	if err != nil {
		return err
	}
	logf("listing returned %d entries after filtering", len(entries))

	if len(entries) == 0 {
		return errors.New("no videos match the filters")
	}

	fmt.Printf("\nFound %d videos:\n\n", len(entries))
	for i, v := range entries {
		dur := videos.FormatDuration(videos.ParseDuration(v.Duration))
		fmt.Printf("%3d. [%s] %s\n", i+1, dur, v.Title)
	}

	if !cfg.Download {
		return nil
	}
	fmt.Println()

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = DefaultDownloadDir
	}
	resolution := cfg.Resolution
	if resolution == "" {
		resolution = DefaultResolution
	}
	return uc.Download(ctx, entries, outDir, resolution)
}

type TranscribeConfig struct {
	Source string
	OutDir string

	ModelRepo      string
	ChunkSeconds   float64
	OverlapSeconds float64

	YtdlpPath    string
	ParakeetPath string
	FFmpegPath   string
	FFprobePath  string
	Logf         func(format string, args ...any)
}

func (c TranscribeConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is empty")
	}
	if c.ChunkSeconds <= 0 {
		return errors.New("chunk seconds must be > 0")
	}
	if c.OverlapSeconds < 0 {
		return errors.New("overlap seconds must be >= 0")
	}
	if c.OverlapSeconds >= c.ChunkSeconds {
		return errors.New("overlap seconds must be < chunk seconds")
	}
	return nil
}

// RunTranscribe acquires audio for the source, transcribes it, and reports
// where the transcripts were written.
func RunTranscribe(ctx context.Context, cfg TranscribeConfig) error {
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = DefaultTranscribeDir
	}

	opts := types.TranscribeOptions{
		ModelRepo:      cfg.ModelRepo,
		ChunkSeconds:   cfg.ChunkSeconds,
		OverlapSeconds: cfg.OverlapSeconds,
	}
	if opts.ModelRepo == "" {
		opts.ModelRepo = DefaultModelRepo
	}

	uc := usecase.New(usecase.Deps{
		Audio: ytdlp.New(cfg.YtdlpPath),
		ASR: spinnerTranscriber{
			inner:   parakeet.New(cfg.ParakeetPath),
			message: "Transcribing (first run downloads model)",
		},
		Media: ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
	})

	res, err := uc.Transcribe(ctx, usecase.TranscribeInput{
		Source: cfg.Source,
		OutDir: outDir,
		Opts:   opts,
		Logf:   cfg.Logf,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved transcript: %s\n", res.TextPath)
	fmt.Printf("Saved full JSON: %s\n", res.JSONPath)
	return nil
}

// spinnerTranscriber animates a spinner while the synchronous transcription
// call runs. Stop blocks until the line is erased, so no spinner output
// lingers after the model returns.
type spinnerTranscriber struct {
	inner   ports.Transcriber
	message string
}

func (s spinnerTranscriber) Transcribe(ctx context.Context, wavPath string, opts types.TranscribeOptions) (types.Transcript, error) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " " + s.message
	sp.Start()
	defer sp.Stop()
	return s.inner.Transcribe(ctx, wavPath, opts)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ensure adapters implement ports
var _ ports.VideoLister = (*ytdlp.Adapter)(nil)
var _ ports.VideoDownloader = (*ytdlp.Adapter)(nil)
var _ ports.AudioFetcher = (*ytdlp.Adapter)(nil)
var _ ports.Transcriber = (*parakeet.Adapter)(nil)
var _ ports.Transcriber = spinnerTranscriber{}
var _ ports.MediaProber = (*ffmpeg.Adapter)(nil)
