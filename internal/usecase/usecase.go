package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"yttools/internal/domain/videos"
	"yttools/internal/ports"
	"yttools/internal/transcript"
	"yttools/internal/types"
)

type Deps struct {
	Lister     ports.VideoLister
	Downloader ports.VideoDownloader
	Audio      ports.AudioFetcher
	ASR        ports.Transcriber
	Media      ports.MediaProber
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type ListInput struct {
	URL        string
	Keywords   []string
	Max        int
	Shorts     bool
	OnlyShorts bool
}

// ListFiltered fetches the flat listing and applies the duration and keyword
// filters. Regular videos must be longer than 60s unless shorts are allowed;
// only-shorts caps the duration at 60s.
func (u Usecase) ListFiltered(ctx context.Context, in ListInput) ([]types.VideoEntry, error) {
	entries, err := u.d.Lister.ListVideos(ctx, in.URL)
	if err != nil {
		return nil, err
	}

	spec := types.FilterSpec{Keywords: in.Keywords, MinDuration: 60}
	if in.Shorts || in.OnlyShorts {
		spec.MinDuration = 0
	}
	if in.OnlyShorts {
		spec.MaxDuration = 60
	}

	out := videos.Filter(entries, spec)
	if in.Max > 0 && len(out) > in.Max {
		out = out[:in.Max]
	}
	return out, nil
}

func (u Usecase) Download(ctx context.Context, entries []types.VideoEntry, outputDir, resolution string) error {
	return u.d.Downloader.DownloadVideos(ctx, entries, outputDir, resolution)
}

type TranscribeInput struct {
	Source string
	OutDir string
	Opts   types.TranscribeOptions
	Logf   func(format string, args ...any)
}

type TranscribeResult struct {
	WavPath  string
	BaseName string
	TextPath string
	JSONPath string
}

var errFFmpegMissing = errors.New(
	"ffmpeg is required but was not found on PATH\n" +
		"On macOS: brew install ffmpeg\n" +
		"On Ubuntu/Debian: sudo apt-get install ffmpeg",
)

// Transcribe acquires audio for the source (download for URLs, validation
// and copy for local WAV files), runs the model, and writes the .txt and
// .json transcripts.
func (u Usecase) Transcribe(ctx context.Context, in TranscribeInput) (TranscribeResult, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if !u.d.Media.Available() {
		return TranscribeResult{}, errFFmpegMissing
	}

	var (
		wavPath string
		base    string
		err     error
	)
	if isURL(in.Source) {
		wavPath, base, err = u.d.Audio.FetchAudio(ctx, in.Source, in.OutDir)
		if err != nil {
			return TranscribeResult{}, err
		}
	} else {
		wavPath, base, err = ingestLocalFile(in.Source, in.OutDir)
		if err != nil {
			return TranscribeResult{}, err
		}
	}

	if d, probeErr := u.d.Media.ProbeDuration(ctx, wavPath); probeErr == nil {
		logf("audio ready: %s (%s)", wavPath, d.Round(0))
	}

	tr, err := u.d.ASR.Transcribe(ctx, wavPath, in.Opts)
	if err != nil {
		return TranscribeResult{}, err
	}

	textPath, jsonPath, err := transcript.Write(in.OutDir, base, tr)
	if err != nil {
		return TranscribeResult{}, err
	}

	return TranscribeResult{
		WavPath:  wavPath,
		BaseName: base,
		TextPath: textPath,
		JSONPath: jsonPath,
	}, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ingestLocalFile validates a local source and copies it into outDir under
// its base name, skipping the copy when source and destination coincide.
func ingestLocalFile(source, outDir string) (wavPath, base string, err error) {
	if _, err := os.Stat(source); err != nil {
		return "", "", fmt.Errorf("file not found: %s", source)
	}
	if !strings.HasSuffix(strings.ToLower(source), ".wav") {
		return "", "", errors.New(
			"local files must be WAV; provide a YouTube URL instead, " +
				"or convert your file to WAV (16kHz mono recommended)")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", err
	}

	base = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	dest := filepath.Join(outDir, base+".wav")

	srcAbs, err := filepath.Abs(source)
	if err != nil {
		return "", "", err
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return "", "", err
	}
	if srcAbs != destAbs {
		if err := copyFile(source, dest); err != nil {
			return "", "", fmt.Errorf("copy audio into output directory: %w", err)
		}
	}
	return dest, base, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
