// Package ytdlp shells out to the yt-dlp executable for playlist listing,
// video download, and audio extraction.
package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"yttools/internal/domain/videos"
	"yttools/internal/types"
)

const (
	defaultBin   = "yt-dlp"
	listTemplate = "%(id)s\t%(duration)s\t%(title)s"
	watchURL     = "https://www.youtube.com/watch?v="
)

type Adapter struct {
	bin string
	out io.Writer
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = defaultBin
	}
	return &Adapter{bin: binPath, out: os.Stdout}
}

// CheckInstalled verifies the yt-dlp executable runs at all.
func (a *Adapter) CheckInstalled(ctx context.Context) error {
	if err := exec.CommandContext(ctx, a.bin, "--version").Run(); err != nil {
		return fmt.Errorf("yt-dlp is required but could not be run (%q): %w", a.bin, err)
	}
	return nil
}

// ListVideos fetches the flat listing of a channel or playlist. Each output
// line carries id, duration and title separated by tabs; lines without two
// tab separators are skipped.
func (a *Adapter) ListVideos(ctx context.Context, url string) ([]types.VideoEntry, error) {
	cmd := exec.CommandContext(ctx, a.bin,
		"--flat-playlist",
		"--print", listTemplate,
		url,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp list failed: %w\n%s", err, stderr.String())
	}
	return parseListing(stdout.String()), nil
}

func parseListing(raw string) []types.VideoEntry {
	var entries []types.VideoEntry
	for _, line := range strings.Split(raw, "\n") {
		if strings.Count(line, "\t") < 2 {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		entries = append(entries, types.VideoEntry{
			ID:       parts[0],
			Duration: parts[1],
			Title:    parts[2],
		})
	}
	return entries
}

// DownloadVideos downloads each entry into outputDir, merging into mp4 with
// the format expression for the requested resolution. yt-dlp's own progress
// output goes straight to the adapter's writer; a failed download surfaces
// as the tool's error.
func (a *Adapter) DownloadVideos(ctx context.Context, entries []types.VideoEntry, outputDir, resolution string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	format := videos.BuildFormat(resolution)
	template := filepath.Join(outputDir, "%(title)s.%(ext)s")

	for _, v := range entries {
		fmt.Fprintf(a.out, "Downloading: %s...\n", truncateTitle(v.Title, 70))
		cmd := exec.CommandContext(ctx, a.bin,
			"-f", format,
			"--merge-output-format", "mp4",
			"-o", template,
			watchURL+v.ID,
		)
		cmd.Stdout = a.out
		cmd.Stderr = a.out
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("download %s: %w", v.ID, err)
		}
	}
	return nil
}

func truncateTitle(title string, max int) string {
	r := []rune(title)
	if len(r) <= max {
		return title
	}
	return string(r[:max])
}

var errNoOutputPath = errors.New("yt-dlp did not report an output file path")
