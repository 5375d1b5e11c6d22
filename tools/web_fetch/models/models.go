package models

type Result struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline"`
	Text     string `json:"text"`
	HTMLHash string `json:"html_hash"`
	Status   int    `json:"status"`
	RenderMS int    `json:"render_ms"`
}

// Usable reports whether the fetch yielded article text worth feeding to a
// prompt. A non-usable result is an absence, not an error.
func (r Result) Usable() bool {
	return r.Status == 200 && r.Text != ""
}
