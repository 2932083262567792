package ports

import (
	"context"
	"time"

	"yttools/internal/types"
)

type VideoLister interface {
	ListVideos(ctx context.Context, url string) ([]types.VideoEntry, error)
}

type VideoDownloader interface {
	DownloadVideos(ctx context.Context, entries []types.VideoEntry, outputDir, resolution string) error
}

type AudioFetcher interface {
	// FetchAudio downloads the source's audio into outputDir as a 16 kHz mono
	// WAV and returns the file path plus the transcript base name.
	FetchAudio(ctx context.Context, url, outputDir string) (wavPath, baseName string, err error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string, opts types.TranscribeOptions) (types.Transcript, error)
}

type MediaProber interface {
	// Available reports whether the codec toolkit is resolvable on PATH.
	Available() bool
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}
