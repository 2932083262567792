// Package parakeet runs the parakeet-mlx CLI and decodes its JSON result.
package parakeet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"yttools/internal/types"
)

type Adapter struct {
	bin string
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "parakeet-mlx"
	}
	return &Adapter{bin: binPath}
}

// Transcribe runs the model over wavPath with the configured chunking and
// overlap windows, letting the tool write its JSON result into a scratch
// directory so it cannot collide with the transcripts written later.
func (a *Adapter) Transcribe(ctx context.Context, wavPath string, opts types.TranscribeOptions) (types.Transcript, error) {
	scratch, err := os.MkdirTemp("", "parakeet-*")
	if err != nil {
		return types.Transcript{}, err
	}
	defer os.RemoveAll(scratch)

	args := []string{
		wavPath,
		"--model", opts.ModelRepo,
		"--chunk-duration", formatSeconds(opts.ChunkSeconds),
		"--overlap-duration", formatSeconds(opts.OverlapSeconds),
		"--output-format", "json",
		"--output-dir", scratch,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("parakeet-mlx failed: %w\n%s", err, string(b))
	}

	base := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	jb, err := os.ReadFile(filepath.Join(scratch, base+".json"))
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read parakeet-mlx result: %w", err)
	}

	var tr types.Transcript
	if err := json.Unmarshal(jb, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("decode parakeet-mlx result: %w", err)
	}
	tr.Text = strings.TrimSpace(tr.Text)
	for i := range tr.Sentences {
		tr.Sentences[i].Text = strings.TrimSpace(tr.Sentences[i].Text)
	}
	return tr, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
