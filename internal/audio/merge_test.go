package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const testSampleRate = 24000

// writeTestWAV writes a mono 16-bit WAV with n samples of a constant value.
func writeTestWAV(t *testing.T, path string, n, value int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: testSampleRate, NumChannels: 1},
		SourceBitDepth: 16,
		Data:           make([]int, n),
	}
	for i := range buf.Data {
		buf.Data[i] = value
	}

	enc := wav.NewEncoder(f, testSampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

func TestMergeConcatenatesWithSilence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lens := []int{1000, 2000, 3000}
	paths := make([]string, len(lens))
	for i, n := range lens {
		paths[i] = filepath.Join(dir, fmt.Sprintf("host_%013d.wav", 1700000000000+i))
		writeTestWAV(t, paths[i], n, i+1)
	}

	out := filepath.Join(dir, "episode.wav")
	if err := NewMerger().Merge(paths, out); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	buf, err := decodeWAV(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	gap := testSampleRate / 2
	want := 1000 + 2000 + 3000 + 2*gap
	if len(buf.Data) != want {
		t.Fatalf("merged length = %d samples, want %d", len(buf.Data), want)
	}

	// First segment's samples come first; silence only between segments.
	if buf.Data[0] != 1 {
		t.Errorf("first sample = %d, want 1", buf.Data[0])
	}
	if buf.Data[1000] != 0 {
		t.Errorf("sample after first segment = %d, want silence", buf.Data[1000])
	}
	if got := buf.Data[1000+gap]; got != 2 {
		t.Errorf("first sample of second segment = %d, want 2", got)
	}
}

func TestMergeReordersByFilenameKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	early := filepath.Join(dir, fmt.Sprintf("host_%013d.wav", 1700000000000))
	late := filepath.Join(dir, fmt.Sprintf("expert_%013d.wav", 1700000000005))
	writeTestWAV(t, early, 100, 7)
	writeTestWAV(t, late, 100, 9)

	// Pass paths out of order; the key in the filename wins.
	out := filepath.Join(dir, "episode.wav")
	if err := NewMerger().Merge([]string{late, early}, out); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	buf, err := decodeWAV(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if buf.Data[0] != 7 {
		t.Errorf("first sample = %d, want 7 (earlier key first)", buf.Data[0])
	}
	if last := buf.Data[len(buf.Data)-1]; last != 9 {
		t.Errorf("last sample = %d, want 9", last)
	}
}

func TestMergeSkipsMissingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, fmt.Sprintf("host_%013d.wav", 1700000000000))
	writeTestWAV(t, present, 500, 3)
	missing := filepath.Join(dir, fmt.Sprintf("expert_%013d.wav", 1700000000001))

	out := filepath.Join(dir, "episode.wav")
	if err := NewMerger().Merge([]string{present, missing}, out); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	buf, err := decodeWAV(out)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(buf.Data) != 500 {
		t.Errorf("merged length = %d, want 500 (single segment, no silence)", len(buf.Data))
	}
}

func TestMergeNoUsableInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "episode.wav")
	err := NewMerger().Merge([]string{filepath.Join(dir, "host_1700000000000.wav")}, out)
	if err == nil {
		t.Fatal("expected error for zero usable inputs")
	}
}

func TestMergeRejectsMixedFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, fmt.Sprintf("host_%013d.wav", 1700000000000))
	b := filepath.Join(dir, fmt.Sprintf("expert_%013d.wav", 1700000000001))
	writeTestWAV(t, a, 100, 1)

	f, err := os.Create(b)
	if err != nil {
		t.Fatal(err)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: 16000, NumChannels: 1},
		SourceBitDepth: 16,
		Data:           make([]int, 100),
	}
	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "episode.wav")
	if err := NewMerger().Merge([]string{a, b}, out); err == nil {
		t.Fatal("expected error for mismatched sample rates")
	}
}
