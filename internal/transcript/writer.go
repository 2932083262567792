// Package transcript persists transcription results as a plain-text file and
// a structured JSON file next to each other.
package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"yttools/internal/domain/jsonsafe"
)

// Result is the minimal surface a transcription result must expose.
type Result interface {
	FullText() string
}

// Write stores res under outputDir as <baseName>.txt (the full text,
// verbatim) and <baseName>.json (the normalized structure, indented,
// non-ASCII kept literal). Writes are fail-fast: an error on the text file
// means the JSON file is not attempted.
func Write(outputDir, baseName string, res Result) (textPath, jsonPath string, err error) {
	textPath = filepath.Join(outputDir, baseName+".txt")
	jsonPath = filepath.Join(outputDir, baseName+".json")

	if err := os.WriteFile(textPath, []byte(res.FullText()), 0o644); err != nil {
		return "", "", fmt.Errorf("write text transcript: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonsafe.Normalize(res)); err != nil {
		return "", "", fmt.Errorf("encode transcript JSON: %w", err)
	}
	if err := os.WriteFile(jsonPath, buf.Bytes(), 0o644); err != nil {
		return "", "", fmt.Errorf("write JSON transcript: %w", err)
	}

	return textPath, jsonPath, nil
}
