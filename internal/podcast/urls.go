package podcast

import (
	"net/url"
	"regexp"
	"strings"
)

// Domains whose pages carry no article text worth scraping (media hosts,
// social networks, the forum itself). Matched as substrings of the host.
var excludedDomains = []string{
	"imgur.com",
	"i.redd.it",
	"twitter.com",
	"x.com",
	"facebook.com",
	"instagram.com",
	"reddit.com",
	"t.co",
	"youtube.com",
}

var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// IsValidURL reports whether a URL parses into scheme and host and its host
// is not on the excluded-domain list.
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Host)
	for _, excluded := range excludedDomains {
		if strings.Contains(host, excluded) {
			return false
		}
	}
	return true
}

// ExtractURLs pulls every valid http(s) URL out of free text. Duplicates are
// the caller's problem; order follows appearance in the text.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if IsValidURL(m) {
			urls = append(urls, m)
		}
	}
	return urls
}

// DedupeURLs removes exact-string duplicates, keeping first occurrence order.
func DedupeURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
