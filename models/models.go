package models

import "time"

// Comment is one top-level comment attached to a forum post.
type Comment struct {
	Author string `json:"author"`
	Score  int    `json:"score"`
	Body   string `json:"body"`
}

// RawPost is a forum post exactly as fetched, immutable after retrieval.
type RawPost struct {
	Subreddit  string    `json:"subreddit"`
	Title      string    `json:"title"`
	SelfText   string    `json:"selftext"`
	URL        string    `json:"url"`
	Author     string    `json:"author"`
	Score      int       `json:"score"`
	CreatedUTC time.Time `json:"created_utc"`
	Comments   []Comment `json:"comments"`
}

// EnrichedPost is a RawPost augmented with scraped link content and an LLM summary.
// URLContent only carries URLs that were fetched successfully; its keys are a
// subset of ExtractedURLs.
type EnrichedPost struct {
	Title         string            `json:"title"`
	SelfText      string            `json:"selftext"`
	URL           string            `json:"url"`
	Comments      []Comment         `json:"comments"`
	ExtractedURLs []string          `json:"extracted_urls"`
	URLContent    map[string]string `json:"url_content"`
	Summary       string            `json:"summary"`
}

// Section is one planned discussion topic with its ordered talking points.
type Section struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Speaker is one of the three fixed podcast voices.
type Speaker string

const (
	SpeakerHost    Speaker = "Host"
	SpeakerLearner Speaker = "Learner"
	SpeakerExpert  Speaker = "Expert"
)

// Speakers lists the fixed cast in script order.
var Speakers = []Speaker{SpeakerHost, SpeakerLearner, SpeakerExpert}

// Segment is one (speaker, utterance) unit of the final script. Ordinal is the
// segment's position in document order and is unique within a run.
type Segment struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
	Ordinal int     `json:"ordinal"`
}

// Episode is the artifact of one completed run.
type Episode struct {
	RunID       string    `json:"run_id"`
	Subreddit   string    `json:"subreddit"`
	Script      string    `json:"script"`
	AudioPath   string    `json:"audio_path"`
	GeneratedAt time.Time `json:"generated_at"`
}
