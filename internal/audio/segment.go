package audio

import (
	"regexp"
	"strings"

	"github.com/mohammad-safakhou/loopcast/models"
)

var (
	speakerPattern  = regexp.MustCompile(`(Host|Learner|Expert):`)
	speakerBoundary = regexp.MustCompile(`Host|Learner|Expert`)
)

// SegmentScript splits a finished script into per-speaker segments. An
// utterance ends at the next bare speaker name, colon or not, so a mid-line
// mention of a speaker cuts the segment short. Text before the first label
// is dropped. Ordinals are assigned in document order so downstream
// filenames sort back into script order.
func SegmentScript(script string) []models.Segment {
	matches := speakerPattern.FindAllStringSubmatchIndex(script, -1)
	if len(matches) == 0 {
		return nil
	}

	segments := make([]models.Segment, 0, len(matches))
	for i, m := range matches {
		speaker := models.Speaker(script[m[2]:m[3]])
		end := len(script)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := script[m[1]:end]
		if cut := speakerBoundary.FindStringIndex(body); cut != nil {
			body = body[:cut[0]]
		}
		segments = append(segments, models.Segment{
			Speaker: speaker,
			Text:    strings.TrimSpace(body),
			Ordinal: i,
		})
	}
	return segments
}
