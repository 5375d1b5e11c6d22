package podcast

import (
	"reflect"
	"testing"
)

func TestIsValidURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain article", in: "https://example.com/story", want: true},
		{name: "http scheme", in: "http://news.example.org/a/b", want: true},
		{name: "missing scheme", in: "example.com/story", want: false},
		{name: "missing host", in: "https://", want: false},
		{name: "excluded imgur", in: "https://imgur.com/abc", want: false},
		{name: "excluded reddit", in: "https://www.reddit.com/r/foo", want: false},
		{name: "excluded subdomain match", in: "https://m.youtube.com/watch?v=1", want: false},
		{name: "excluded shortener", in: "https://t.co/xyz", want: false},
		{name: "not a url", in: "just words", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidURL(tt.in); got != tt.want {
				t.Fatalf("IsValidURL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractURLs(t *testing.T) {
	t.Parallel()
	text := "Read https://example.com/a and https://blog.example.org/b, " +
		"skip https://imgur.com/junk and https://youtube.com/watch?v=0."

	// The pattern is greedy about trailing punctuation; the comma rides along.
	got := ExtractURLs(text)
	want := []string{"https://example.com/a", "https://blog.example.org/b,"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractURLs() = %v, want %v", got, want)
	}
}

func TestExtractURLsEmptyText(t *testing.T) {
	t.Parallel()
	if got := ExtractURLs("no links here"); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}

func TestDedupeURLs(t *testing.T) {
	t.Parallel()
	in := []string{"a", "b", "a", "c", "b"}
	want := []string{"a", "b", "c"}
	if got := DedupeURLs(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeURLs(%v) = %v, want %v", in, got, want)
	}
}
