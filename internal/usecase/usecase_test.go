package usecase

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"yttools/internal/types"
)

type fakeLister struct {
	entries []types.VideoEntry
	err     error
}

func (f fakeLister) ListVideos(context.Context, string) ([]types.VideoEntry, error) {
	return f.entries, f.err
}

type fakeDownloader struct {
	gotEntries    []types.VideoEntry
	gotDir        string
	gotResolution string
}

func (f *fakeDownloader) DownloadVideos(_ context.Context, entries []types.VideoEntry, dir, resolution string) error {
	f.gotEntries = entries
	f.gotDir = dir
	f.gotResolution = resolution
	return nil
}

type fakeAudio struct {
	base   string
	called bool
}

func (f *fakeAudio) FetchAudio(_ context.Context, _, outputDir string) (string, string, error) {
	f.called = true
	path := filepath.Join(outputDir, f.base+".wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		return "", "", err
	}
	return path, f.base, nil
}

type fakeASR struct {
	tr      types.Transcript
	gotWav  string
	gotOpts types.TranscribeOptions
}

func (f *fakeASR) Transcribe(_ context.Context, wavPath string, opts types.TranscribeOptions) (types.Transcript, error) {
	f.gotWav = wavPath
	f.gotOpts = opts
	return f.tr, nil
}

type fakeProber struct{ available bool }

func (f fakeProber) Available() bool { return f.available }
func (f fakeProber) ProbeDuration(context.Context, string) (time.Duration, error) {
	return 3 * time.Second, nil
}

func testEntries() []types.VideoEntry {
	return []types.VideoEntry{
		{ID: "a", Duration: "30", Title: "short clip"},
		{ID: "b", Duration: "300", Title: "long talk"},
		{ID: "c", Duration: "45", Title: "another clip"},
		{ID: "d", Duration: "600", Title: "longer talk"},
	}
}

func TestListFiltered_DefaultExcludesShorts(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Lister: fakeLister{entries: testEntries()}})
	got, err := uc.ListFiltered(context.Background(), ListInput{URL: "u"})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	wantIDs := []string{"b", "d"}
	assertIDs(t, got, wantIDs)
}

func TestListFiltered_ShortsIncluded(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Lister: fakeLister{entries: testEntries()}})
	got, err := uc.ListFiltered(context.Background(), ListInput{URL: "u", Shorts: true})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	assertIDs(t, got, []string{"a", "b", "c", "d"})
}

func TestListFiltered_OnlyShorts(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Lister: fakeLister{entries: testEntries()}})
	got, err := uc.ListFiltered(context.Background(), ListInput{URL: "u", OnlyShorts: true})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	assertIDs(t, got, []string{"a", "c"})
}

func TestListFiltered_MaxTruncates(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Lister: fakeLister{entries: testEntries()}})
	got, err := uc.ListFiltered(context.Background(), ListInput{URL: "u", Shorts: true, Max: 2})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	assertIDs(t, got, []string{"a", "b"})
}

func TestDownload_PassesThrough(t *testing.T) {
	t.Parallel()

	dl := &fakeDownloader{}
	uc := New(Deps{Downloader: dl})
	entries := testEntries()[:1]
	if err := uc.Download(context.Background(), entries, "out", "720"); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !reflect.DeepEqual(dl.gotEntries, entries) || dl.gotDir != "out" || dl.gotResolution != "720" {
		t.Fatalf("unexpected downloader call: %+v", dl)
	}
}

func TestTranscribe_LocalWav(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src", "Talk.WAV")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(src, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	asr := &fakeASR{tr: types.Transcript{Text: "hello"}}
	uc := New(Deps{ASR: asr, Media: fakeProber{available: true}})

	res, err := uc.Transcribe(context.Background(), TranscribeInput{
		Source: src,
		OutDir: outDir,
		Opts:   types.TranscribeOptions{ModelRepo: "m", ChunkSeconds: 120, OverlapSeconds: 15},
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if res.BaseName != "Talk" {
		t.Fatalf("base name = %q, want Talk", res.BaseName)
	}
	if asr.gotWav != filepath.Join(outDir, "Talk.wav") {
		t.Fatalf("ASR got wav %q", asr.gotWav)
	}
	b, err := os.ReadFile(res.TextPath)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("transcript text = %q", string(b))
	}
	if _, err := os.Stat(res.JSONPath); err != nil {
		t.Fatalf("json transcript missing: %v", err)
	}
}

func TestTranscribe_LocalWavSelfCopy(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	src := filepath.Join(outDir, "same.wav")
	if err := os.WriteFile(src, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	uc := New(Deps{ASR: &fakeASR{tr: types.Transcript{Text: "x"}}, Media: fakeProber{available: true}})
	res, err := uc.Transcribe(context.Background(), TranscribeInput{Source: src, OutDir: outDir})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.WavPath != src {
		t.Fatalf("wav path = %q, want %q", res.WavPath, src)
	}
}

func TestTranscribe_RejectsNonWav(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "notes.mp3")
	if err := os.WriteFile(src, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	outDir := filepath.Join(tmp, "out")

	uc := New(Deps{ASR: &fakeASR{}, Media: fakeProber{available: true}})
	_, err := uc.Transcribe(context.Background(), TranscribeInput{Source: src, OutDir: outDir})
	if err == nil || !strings.Contains(err.Error(), "must be WAV") {
		t.Fatalf("expected WAV rejection, got %v", err)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Fatalf("output directory should not exist after rejection")
	}
}

func TestTranscribe_RejectsMissingFile(t *testing.T) {
	t.Parallel()

	uc := New(Deps{ASR: &fakeASR{}, Media: fakeProber{available: true}})
	_, err := uc.Transcribe(context.Background(), TranscribeInput{
		Source: filepath.Join(t.TempDir(), "nope.wav"),
		OutDir: t.TempDir(),
	})
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected file-not-found, got %v", err)
	}
}

func TestTranscribe_FFmpegMissingIsFatal(t *testing.T) {
	t.Parallel()

	uc := New(Deps{ASR: &fakeASR{}, Media: fakeProber{available: false}})
	_, err := uc.Transcribe(context.Background(), TranscribeInput{Source: "x.wav", OutDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "ffmpeg is required") {
		t.Fatalf("expected ffmpeg error, got %v", err)
	}
}

func TestTranscribe_URLUsesAudioFetcher(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	audio := &fakeAudio{base: "Some_Video"}
	asr := &fakeASR{tr: types.Transcript{Text: "from url"}}
	uc := New(Deps{Audio: audio, ASR: asr, Media: fakeProber{available: true}})

	res, err := uc.Transcribe(context.Background(), TranscribeInput{
		Source: "https://www.youtube.com/watch?v=abc",
		OutDir: outDir,
		Opts:   types.TranscribeOptions{ModelRepo: "m", ChunkSeconds: 60, OverlapSeconds: 5},
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !audio.called {
		t.Fatal("audio fetcher was not called for a URL source")
	}
	if res.BaseName != "Some_Video" {
		t.Fatalf("base name = %q", res.BaseName)
	}
	if asr.gotOpts.ChunkSeconds != 60 {
		t.Fatalf("chunk seconds = %v", asr.gotOpts.ChunkSeconds)
	}
}

func assertIDs(t *testing.T, got []types.VideoEntry, want []string) {
	t.Helper()
	var ids []string
	for _, v := range got {
		ids = append(ids, v.ID)
	}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}
