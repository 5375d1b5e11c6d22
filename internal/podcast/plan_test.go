package podcast

import (
	"reflect"
	"testing"

	"github.com/mohammad-safakhou/loopcast/models"
)

func TestParseScriptPlan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []models.Section
	}{
		{
			name: "two sections with points",
			in:   "## A\n- p1\n- p2\n## B\n- p3",
			want: []models.Section{
				{Title: "A", Points: []string{"p1", "p2"}},
				{Title: "B", Points: []string{"p3"}},
			},
		},
		{
			name: "bullet before any header is dropped",
			in:   "- orphan\n## A\n- p1",
			want: []models.Section{
				{Title: "A", Points: []string{"p1"}},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "mixed header levels treated alike",
			in:   "# Top\n- a\n### Deep\n- b",
			want: []models.Section{
				{Title: "Top", Points: []string{"a"}},
				{Title: "Deep", Points: []string{"b"}},
			},
		},
		{
			name: "blank lines and prose ignored",
			in:   "intro text\n\n## Only\n\nsome prose\n- point\n",
			want: []models.Section{
				{Title: "Only", Points: []string{"point"}},
			},
		},
		{
			name: "section without points",
			in:   "## Empty\n## Next\n- p",
			want: []models.Section{
				{Title: "Empty", Points: []string{}},
				{Title: "Next", Points: []string{"p"}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScriptPlan(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseScriptPlan() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
