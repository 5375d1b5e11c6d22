package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mohammad-safakhou/loopcast/config"
	"github.com/mohammad-safakhou/loopcast/models"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"
)

// Client talks to the Reddit data API using an application-only OAuth token.
type Client struct {
	cfg        config.RedditConfig
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient constructs a Reddit client. Credentials are validated here so a
// misconfigured process fails before any run work begins.
func NewClient(cfg config.RedditConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type listing struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	URL        string  `json:"url"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Stickied   bool    `json:"stickied"`
	Body       string  `json:"body"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status: %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}

	c.token = tok.AccessToken
	// Refresh a minute early so in-flight requests never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", apiBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// FetchTopPosts returns the top posts of a subreddit for the configured time
// window, restricted to the given flair when one is set, each carrying its top
// non-stickied comments.
func (c *Client) FetchTopPosts(ctx context.Context, subreddit string) ([]models.RawPost, error) {
	params := url.Values{}
	if c.cfg.FlairFilter != "" {
		params.Set("q", fmt.Sprintf("flair:%s", c.cfg.FlairFilter))
	} else {
		params.Set("q", "*")
	}
	params.Set("restrict_sr", "1")
	params.Set("sort", "top")
	params.Set("t", c.cfg.TimeFilter)
	params.Set("limit", fmt.Sprintf("%d", c.cfg.PostLimit))

	var result listing
	if err := c.get(ctx, "/r/"+subreddit+"/search", params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch posts from r/%s: %w", subreddit, err)
	}

	posts := make([]models.RawPost, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		p := child.Data
		comments, err := c.topComments(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comments for post %s: %w", p.ID, err)
		}
		posts = append(posts, models.RawPost{
			Subreddit:  p.Subreddit,
			Title:      p.Title,
			SelfText:   p.SelfText,
			URL:        p.URL,
			Author:     p.Author,
			Score:      p.Score,
			CreatedUTC: time.Unix(int64(p.CreatedUTC), 0).UTC(),
			Comments:   comments,
		})
	}
	return posts, nil
}

// topComments fetches the top-level comment tree of a post and keeps the first
// non-stickied comments up to the configured cap.
func (c *Client) topComments(ctx context.Context, postID string) ([]models.Comment, error) {
	params := url.Values{}
	params.Set("sort", "top")
	params.Set("depth", "1")
	params.Set("limit", fmt.Sprintf("%d", c.cfg.CommentsPerPost*2))

	// The comments endpoint returns a two-element array: the post listing and
	// the comment listing.
	var result []listing
	if err := c.get(ctx, "/comments/"+postID, params, &result); err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}

	var comments []models.Comment
	for _, child := range result[1].Data.Children {
		if len(comments) >= c.cfg.CommentsPerPost {
			break
		}
		d := child.Data
		if d.Stickied || d.Body == "" {
			continue
		}
		comments = append(comments, models.Comment{
			Author: d.Author,
			Score:  d.Score,
			Body:   d.Body,
		})
	}
	return comments, nil
}
