// Package model defines the post and comment records shared across the CLI.
package model

// Post is a normalized Reddit submission, optionally annotated with a
// generated summary.
type Post struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	URL          string  `json:"url"`
	Score        int     `json:"score"`
	UpvoteRatio  float64 `json:"upvote_ratio"`
	NumComments  int     `json:"num_comments"`
	CreatedUTC   float64 `json:"created_utc"`
	Author       string  `json:"author"`
	Permalink    string  `json:"permalink"`
	Subreddit    string  `json:"subreddit"`
	Summary      string  `json:"summary,omitempty"`
	SummarizedAt string  `json:"summarized_at,omitempty"`
}

// Comment is a single comment on a post. Comments feed summarization only
// and are never persisted on their own.
type Comment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Author     string  `json:"author"`
}

// DeletedAuthor is the sentinel recorded when Reddit reports no author.
const DeletedAuthor = "[deleted]"

// ValidSorts are the listing orders the Reddit API accepts.
var ValidSorts = map[string]bool{
	"hot":    true,
	"new":    true,
	"top":    true,
	"rising": true,
}
