package audio

import (
	"testing"

	"github.com/mohammad-safakhou/loopcast/models"
)

func TestSegmentScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   []models.Segment
	}{
		{
			name:   "three speakers in order",
			script: "Host: hi\nLearner: what?\nExpert: because X.\n",
			want: []models.Segment{
				{Speaker: models.SpeakerHost, Text: "hi", Ordinal: 0},
				{Speaker: models.SpeakerLearner, Text: "what?", Ordinal: 1},
				{Speaker: models.SpeakerExpert, Text: "because X.", Ordinal: 2},
			},
		},
		{
			name:   "preamble before first label is dropped",
			script: "Welcome notes.\nHost: let's begin",
			want: []models.Segment{
				{Speaker: models.SpeakerHost, Text: "let's begin", Ordinal: 0},
			},
		},
		{
			name:   "multiline utterance stays in one segment",
			script: "Expert: first line\nsecond line\n\nHost: bye",
			want: []models.Segment{
				{Speaker: models.SpeakerExpert, Text: "first line\nsecond line", Ordinal: 0},
				{Speaker: models.SpeakerHost, Text: "bye", Ordinal: 1},
			},
		},
		{
			name:   "label with empty utterance kept",
			script: "Host:\nLearner: ok",
			want: []models.Segment{
				{Speaker: models.SpeakerHost, Text: "", Ordinal: 0},
				{Speaker: models.SpeakerLearner, Text: "ok", Ordinal: 1},
			},
		},
		{
			name:   "utterance ends at a bare speaker mention",
			script: "Host: talk about the Host role today\nLearner: ok",
			want: []models.Segment{
				{Speaker: models.SpeakerHost, Text: "talk about the", Ordinal: 0},
				{Speaker: models.SpeakerLearner, Text: "ok", Ordinal: 1},
			},
		},
		{
			name:   "no labels yields nothing",
			script: "just prose without any dialogue markers",
			want:   nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SegmentScript(tt.script)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
