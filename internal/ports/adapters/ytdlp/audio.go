package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// progressTemplate makes yt-dlp emit one parseable line per progress tick:
// "dlp <downloaded> <total> <total_estimate>". Fields print as "NA" when
// yt-dlp does not know them yet.
const progressTemplate = "download:dlp %(progress.downloaded_bytes)s %(progress.total_bytes)s %(progress.total_bytes_estimate)s"

// FetchAudio downloads the best audio track of url into outputDir, transcoded
// to 16 kHz mono WAV, rendering byte-level progress while the download runs.
// The returned base name is the output file name minus its extension.
func (a *Adapter) FetchAudio(ctx context.Context, url, outputDir string) (string, string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output directory: %w", err)
	}

	// --quiet plus --progress leaves only progress lines and the --print
	// output on stdout, which keeps parsing simple.
	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "bestaudio/best",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--progress",
		"--restrict-filenames",
		"-x",
		"--audio-format", "wav",
		"--audio-quality", "0",
		"--postprocessor-args", "ffmpeg:-ar 16000 -ac 1",
		"-o", filepath.Join(outputDir, "%(title)s.%(ext)s"),
		"--newline",
		"--progress-template", progressTemplate,
		"--print", "after_move:filepath",
		url,
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", "", err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("start yt-dlp: %w", err)
	}

	wavPath := a.consumeOutput(stdout)

	if err := cmd.Wait(); err != nil {
		return "", "", fmt.Errorf("yt-dlp audio download failed: %w\n%s", err, stderr.String())
	}
	if wavPath == "" {
		return "", "", errNoOutputPath
	}

	base := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	return wavPath, base, nil
}

// consumeOutput reads yt-dlp's stdout line by line, feeding progress lines
// into a byte progress bar and remembering the final file path printed by
// --print after_move:filepath.
func (a *Adapter) consumeOutput(r io.Reader) string {
	var (
		bar       *progressbar.ProgressBar
		finalPath string
		converted bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "dlp "):
			downloaded, total, ok := parseProgressLine(line)
			if !ok {
				continue
			}
			if bar == nil {
				bar = progressbar.DefaultBytes(total, "Downloading")
			}
			_ = bar.Set64(downloaded)
		case strings.Contains(line, string(os.PathSeparator)):
			// The printed filepath is the last path-looking line.
			if bar != nil && !converted {
				_ = bar.Finish()
				fmt.Fprintln(a.out, "Converting to WAV...")
				converted = true
			}
			finalPath = line
		}
	}
	if bar != nil && !converted {
		_ = bar.Finish()
		fmt.Fprintln(a.out, "Converting to WAV...")
	}
	return finalPath
}

// parseProgressLine decodes "dlp <downloaded> <total> <estimate>" lines.
// Unknown totals fall back to the estimate, then to -1 (indeterminate bar).
func parseProgressLine(line string) (downloaded, total int64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "dlp" {
		return 0, 0, false
	}
	downloaded, err := parseByteField(fields[1])
	if err != nil {
		return 0, 0, false
	}
	total, err = parseByteField(fields[2])
	if err != nil {
		total, err = parseByteField(fields[3])
	}
	if err != nil {
		total = -1
	}
	return downloaded, total, true
}

func parseByteField(s string) (int64, error) {
	// yt-dlp renders unknown numeric fields as "NA" and estimates as floats.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
