// Package summarize generates per-post summaries and multi-post digests
// through a pluggable language-model provider.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rcliao/reddit-digest/internal/model"
)

// ErrSummary is the sentinel recorded when a summary could not be generated.
const ErrSummary = "Error: Could not generate summary"

// NoPostsDigest is returned by CreateDigest for an empty input.
const NoPostsDigest = "No posts to summarize."

const (
	maxCommentsPerPost = 5
	maxCommentChars    = 200
	maxDigestPosts     = 10
)

const postPrompt = `Please provide a concise summary of this Reddit post. Include:
1. Main topic/subject
2. Key points discussed
3. Overall sentiment/tone
4. Any important details or conclusions

Post content:
%s

Provide a summary in 2-3 sentences.`

const digestPrompt = `Based on these Reddit posts, provide an overall summary highlighting:
1. Main themes or topics discussed
2. Notable trends or patterns
3. Most engaging or controversial posts
4. Key insights or takeaways

Posts data:
%s

Provide a comprehensive but concise summary in 3-4 paragraphs.`

// CommentFetcher supplies comments for a post when comment inclusion is
// requested.
type CommentFetcher interface {
	FetchComments(ctx context.Context, postID string, limit int) ([]model.Comment, error)
}

// Summarizer annotates posts with model-generated summaries.
type Summarizer struct {
	logger   *slog.Logger
	gen      Generator
	comments CommentFetcher
	now      func() time.Time
}

// New creates a Summarizer. fetcher may be nil, in which case comment
// inclusion is skipped.
func New(logger *slog.Logger, gen Generator, fetcher CommentFetcher) *Summarizer {
	return &Summarizer{logger: logger, gen: gen, comments: fetcher, now: time.Now}
}

// SummarizeOne returns a copy of post with summary fields added. Up to five
// comments, truncated to 200 characters each, are embedded in the prompt. On
// any failure the copy carries the error sentinel and no timestamp.
func (s *Summarizer) SummarizeOne(ctx context.Context, post model.Post, comments []model.Comment) model.Post {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", post.Title)
	if post.Content != "" {
		fmt.Fprintf(&b, "Content: %s\n", post.Content)
	}
	if len(comments) > 0 {
		b.WriteString("\nTop Comments:\n")
		for i, c := range comments {
			if i >= maxCommentsPerPost {
				break
			}
			body := c.Body
			if len(body) > maxCommentChars {
				body = body[:maxCommentChars]
			}
			fmt.Fprintf(&b, "%d. %s...\n", i+1, body)
		}
	}

	summary, err := s.gen.Generate(ctx, fmt.Sprintf(postPrompt, b.String()))
	if err != nil {
		s.logger.Error("failed to summarize post", "post_id", post.ID, "error", err)
		post.Summary = ErrSummary
		return post
	}

	post.Summary = summary
	post.SummarizedAt = s.now().Format("2006-01-02 15:04:05")
	return post
}

// SummarizeAll summarizes posts sequentially, preserving input order. When
// includeComments is set and a comment fetcher is available, each post's top
// comments are fetched and fed into its summary; a failed comment fetch is
// logged and the post is summarized without them.
func (s *Summarizer) SummarizeAll(ctx context.Context, posts []model.Post, includeComments bool) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, post := range posts {
		s.logger.Info("summarizing post", "title", truncate(post.Title, 50))

		var comments []model.Comment
		if includeComments && s.comments != nil {
			var err error
			comments, err = s.comments.FetchComments(ctx, post.ID, maxCommentsPerPost)
			if err != nil {
				s.logger.Error("failed to fetch comments", "post_id", post.ID, "error", err)
				comments = nil
			}
		}

		out = append(out, s.SummarizeOne(ctx, post, comments))
	}
	return out
}

// CreateDigest builds a markdown digest of posts: a heading, a generation
// timestamp, a model-written narrative across the first ten posts, then the
// per-post listing. Failures are returned as an error string, never raised.
func (s *Summarizer) CreateDigest(ctx context.Context, posts []model.Post) string {
	if len(posts) == 0 {
		return NoPostsDigest
	}

	var listing strings.Builder
	listing.WriteString("Reddit Posts Summary:\n\n")
	for i, post := range posts {
		if i >= maxDigestPosts {
			break
		}
		fmt.Fprintf(&listing, "%d. **%s**\n", i+1, post.Title)
		fmt.Fprintf(&listing, "   Subreddit: r/%s\n", post.Subreddit)
		fmt.Fprintf(&listing, "   Score: %d | Comments: %d\n", post.Score, post.NumComments)
		if post.Summary != "" {
			fmt.Fprintf(&listing, "   Summary: %s\n", post.Summary)
		}
		fmt.Fprintf(&listing, "   Link: %s\n\n", post.Permalink)
	}

	overall, err := s.gen.Generate(ctx, fmt.Sprintf(digestPrompt, listing.String()))
	if err != nil {
		s.logger.Error("failed to create digest", "error", err)
		return fmt.Sprintf("Error creating digest: %v", err)
	}

	var digest strings.Builder
	digest.WriteString("# Reddit Posts Digest\n\n")
	fmt.Fprintf(&digest, "**Generated on:** %s\n\n", s.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&digest, "## Overall Summary\n%s\n\n", overall)
	fmt.Fprintf(&digest, "## Individual Posts\n%s", listing.String())
	return digest.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
