package audio

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var orderKeyPattern = regexp.MustCompile(`_(\d{13})\.wav$`)

// Merger concatenates segment WAV files into one episode file with a short
// pause between utterances.
type Merger struct {
	silence time.Duration
	logger  *log.Logger
}

func NewMerger() *Merger {
	return &Merger{
		silence: 500 * time.Millisecond,
		logger:  log.New(log.Writer(), "[AUDIO] ", log.LstdFlags),
	}
}

// Merge reads the segment files, re-sorts them by the ordering key embedded
// in the filename, and writes the concatenation to outPath. Files that have
// gone missing are skipped with a warning; zero usable inputs is an error.
// All inputs must share one sample rate and channel count.
func (m *Merger) Merge(paths []string, outPath string) error {
	sorted := sortByOrderKey(paths)

	var (
		merged *audio.IntBuffer
		gap    []int
	)
	for _, path := range sorted {
		buf, err := decodeWAV(path)
		if err != nil {
			if os.IsNotExist(err) {
				m.logger.Printf("segment file missing, skipping: %s", path)
				continue
			}
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		if merged == nil {
			merged = &audio.IntBuffer{
				Format:         buf.Format,
				SourceBitDepth: buf.SourceBitDepth,
			}
			samples := int(float64(buf.Format.SampleRate) * m.silence.Seconds())
			gap = make([]int, samples*buf.Format.NumChannels)
		} else {
			if buf.Format.SampleRate != merged.Format.SampleRate || buf.Format.NumChannels != merged.Format.NumChannels {
				return fmt.Errorf("segment %s format %dHz/%dch does not match %dHz/%dch",
					path, buf.Format.SampleRate, buf.Format.NumChannels,
					merged.Format.SampleRate, merged.Format.NumChannels)
			}
			merged.Data = append(merged.Data, gap...)
		}
		merged.Data = append(merged.Data, buf.Data...)
	}

	if merged == nil {
		return fmt.Errorf("no usable segment files to merge")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, merged.Format.SampleRate, merged.SourceBitDepth, merged.Format.NumChannels, 1)
	if err := enc.Write(merged); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing output file: %w", err)
	}
	return nil
}

func decodeWAV(path string) (*audio.IntBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(dec.BitDepth)
	}
	return buf, nil
}

// sortByOrderKey returns paths ordered by the 13-digit key in each filename.
// Paths without a key sort after keyed ones, keeping their relative order.
func sortByOrderKey(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, oki := orderKey(sorted[i])
		kj, okj := orderKey(sorted[j])
		if oki != okj {
			return oki
		}
		return ki < kj
	})
	return sorted
}

func orderKey(path string) (int64, bool) {
	m := orderKeyPattern.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	k, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return k, true
}
