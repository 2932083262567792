package types

// VideoEntry is one row of a flat playlist listing. Duration is kept as the
// raw text yt-dlp printed; it may be "NA" for videos without a known length.
type VideoEntry struct {
	ID       string
	Duration string
	Title    string
}

// FilterSpec selects videos from a listing. All keywords must appear in the
// title (case-insensitive). A zero MinDuration or MaxDuration disables the
// corresponding bound.
type FilterSpec struct {
	Keywords    []string
	MinDuration float64
	MaxDuration float64
}

// TranscribeOptions configure a transcription run.
type TranscribeOptions struct {
	ModelRepo      string
	ChunkSeconds   float64
	OverlapSeconds float64
}

// Transcript is the result of transcribing one audio file.
type Transcript struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences,omitempty"`
}

type Sentence struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Tokens   []Token `json:"tokens,omitempty"`
}

type Token struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// FullText returns the stitched transcript text.
func (t Transcript) FullText() string { return t.Text }
