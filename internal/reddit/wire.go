package reddit

import (
	"encoding/json"
	"strings"

	"github.com/rcliao/reddit-digest/internal/model"
)

// Raw Reddit listing shapes.

type listing struct {
	Data struct {
		Children []struct {
			Kind string   `json:"kind"`
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	URL         string  `json:"url"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	Subreddit   string  `json:"subreddit"`
}

type commentListing struct {
	Data struct {
		Children []commentNode `json:"children"`
	} `json:"data"`
}

type commentNode struct {
	Kind string `json:"kind"`
	Data struct {
		ID         string  `json:"id"`
		Body       string  `json:"body"`
		Score      int     `json:"score"`
		CreatedUTC float64 `json:"created_utc"`
		Author     string  `json:"author"`
		// Replies is a nested listing, or the empty string on leaves.
		Replies json.RawMessage `json:"replies"`
	} `json:"data"`
}

// posts shapes listing children into post records, truncated to limit.
func (l *listing) posts(limit int) []model.Post {
	posts := make([]model.Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if limit > 0 && len(posts) >= limit {
			break
		}
		p := child.Data
		author := p.Author
		if author == "" {
			author = model.DeletedAuthor
		}
		posts = append(posts, model.Post{
			ID:          p.ID,
			Title:       p.Title,
			Content:     p.Selftext,
			URL:         p.URL,
			Score:       p.Score,
			UpvoteRatio: p.UpvoteRatio,
			NumComments: p.NumComments,
			CreatedUTC:  p.CreatedUTC,
			Author:      author,
			Permalink:   "https://reddit.com" + p.Permalink,
			Subreddit:   p.Subreddit,
		})
	}
	return posts
}

// flattenComments walks a comment tree depth-first, skipping "more" stubs
// and removed placeholders without a body.
func flattenComments(nodes []commentNode, out []model.Comment) []model.Comment {
	for _, n := range nodes {
		if n.Kind != "t1" || n.Data.Body == "" {
			continue
		}
		author := n.Data.Author
		if author == "" {
			author = model.DeletedAuthor
		}
		out = append(out, model.Comment{
			ID:         n.Data.ID,
			Body:       n.Data.Body,
			Score:      n.Data.Score,
			CreatedUTC: n.Data.CreatedUTC,
			Author:     author,
		})

		if replies := strings.TrimSpace(string(n.Data.Replies)); strings.HasPrefix(replies, "{") {
			var nested commentListing
			if err := json.Unmarshal(n.Data.Replies, &nested); err == nil {
				out = flattenComments(nested.Data.Children, out)
			}
		}
	}
	return out
}
