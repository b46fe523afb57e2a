package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rcliao/reddit-digest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGen records prompts and replies with canned text.
type fakeGen struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGen) Model() string { return "fake" }

type fakeFetcher struct {
	comments []model.Comment
	err      error
	calls    int
}

func (f *fakeFetcher) FetchComments(_ context.Context, postID string, limit int) ([]model.Comment, error) {
	f.calls++
	return f.comments, f.err
}

func newTestSummarizer(gen Generator, fetcher CommentFetcher) *Summarizer {
	s := New(slog.New(slog.NewTextHandler(os.Stderr, nil)), gen, fetcher)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 30, 45, 0, time.Local) }
	return s
}

func post(id, title string) model.Post {
	return model.Post{
		ID:          id,
		Title:       title,
		Content:     "some body",
		Score:       10,
		NumComments: 3,
		Subreddit:   "golang",
		Permalink:   "https://reddit.com/r/golang/comments/" + id,
	}
}

func TestSummarizeOne(t *testing.T) {
	gen := &fakeGen{reply: "A tidy summary."}
	s := newTestSummarizer(gen, nil)

	got := s.SummarizeOne(context.Background(), post("p1", "Hello"), nil)

	assert.Equal(t, "A tidy summary.", got.Summary)
	assert.Equal(t, "2024-06-01 12:30:45", got.SummarizedAt)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Title: Hello")
	assert.Contains(t, gen.prompts[0], "Content: some body")
}

func TestSummarizeOneSkipsEmptyContent(t *testing.T) {
	gen := &fakeGen{reply: "ok"}
	s := newTestSummarizer(gen, nil)

	p := post("p1", "Link only")
	p.Content = ""
	s.SummarizeOne(context.Background(), p, nil)

	assert.NotContains(t, gen.prompts[0], "Content:")
}

func TestSummarizeOneFailure(t *testing.T) {
	gen := &fakeGen{err: fmt.Errorf("model unavailable")}
	s := newTestSummarizer(gen, nil)

	in := post("p1", "Hello")
	got := s.SummarizeOne(context.Background(), in, nil)

	assert.Equal(t, ErrSummary, got.Summary)
	assert.Empty(t, got.SummarizedAt)
	// The input is untouched apart from the summary fields.
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Score, got.Score)
}

func TestSummarizeOneEmbedsComments(t *testing.T) {
	gen := &fakeGen{reply: "ok"}
	s := newTestSummarizer(gen, nil)

	long := strings.Repeat("x", 300)
	comments := []model.Comment{
		{ID: "c1", Body: "short remark"},
		{ID: "c2", Body: long},
		{ID: "c3", Body: "3"}, {ID: "c4", Body: "4"}, {ID: "c5", Body: "5"},
		{ID: "c6", Body: "never included"},
	}
	s.SummarizeOne(context.Background(), post("p1", "Hello"), comments)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Top Comments:")
	assert.Contains(t, prompt, "1. short remark...")
	assert.Contains(t, prompt, long[:maxCommentChars])
	assert.NotContains(t, prompt, long[:maxCommentChars+1])
	assert.NotContains(t, prompt, "never included")
}

func TestSummarizeAllPreservesOrder(t *testing.T) {
	gen := &fakeGen{reply: "s"}
	s := newTestSummarizer(gen, nil)

	posts := []model.Post{post("a", "first"), post("b", "second"), post("c", "third")}
	got := s.SummarizeAll(context.Background(), posts, false)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
	for _, p := range got {
		assert.Equal(t, "s", p.Summary)
	}
}

func TestSummarizeAllFetchesComments(t *testing.T) {
	gen := &fakeGen{reply: "s"}
	fetcher := &fakeFetcher{comments: []model.Comment{{ID: "c1", Body: "insightful"}}}
	s := newTestSummarizer(gen, fetcher)

	s.SummarizeAll(context.Background(), []model.Post{post("a", "first"), post("b", "second")}, true)

	assert.Equal(t, 2, fetcher.calls)
	assert.Contains(t, gen.prompts[0], "insightful")
}

func TestSummarizeAllCommentFetchFailureDegrades(t *testing.T) {
	gen := &fakeGen{reply: "s"}
	fetcher := &fakeFetcher{err: fmt.Errorf("rate limited")}
	s := newTestSummarizer(gen, fetcher)

	got := s.SummarizeAll(context.Background(), []model.Post{post("a", "first")}, true)

	require.Len(t, got, 1)
	assert.Equal(t, "s", got[0].Summary)
	assert.NotContains(t, gen.prompts[0], "Top Comments:")
}

func TestSummarizeAllWithoutFetcher(t *testing.T) {
	gen := &fakeGen{reply: "s"}
	s := newTestSummarizer(gen, nil)

	got := s.SummarizeAll(context.Background(), []model.Post{post("a", "first")}, true)
	require.Len(t, got, 1)
	assert.Equal(t, "s", got[0].Summary)
}

func TestCreateDigestEmpty(t *testing.T) {
	s := newTestSummarizer(&fakeGen{reply: "unused"}, nil)

	assert.Equal(t, "No posts to summarize.", s.CreateDigest(context.Background(), nil))
}

func TestCreateDigest(t *testing.T) {
	gen := &fakeGen{reply: "An overall narrative."}
	s := newTestSummarizer(gen, nil)

	posts := make([]model.Post, 0, 12)
	for i := 0; i < 12; i++ {
		p := post(fmt.Sprintf("p%d", i), fmt.Sprintf("Post number %d", i))
		if i == 0 {
			p.Summary = "First summary"
		}
		posts = append(posts, p)
	}

	digest := s.CreateDigest(context.Background(), posts)

	assert.Contains(t, digest, "# Reddit Posts Digest")
	assert.Contains(t, digest, "**Generated on:** 2024-06-01 12:30:45")
	assert.Contains(t, digest, "## Overall Summary\nAn overall narrative.")
	assert.Contains(t, digest, "1. **Post number 0**")
	assert.Contains(t, digest, "Summary: First summary")
	assert.Contains(t, digest, "Subreddit: r/golang")
	// Only the first ten posts make the listing.
	assert.Contains(t, digest, "Post number 9")
	assert.NotContains(t, digest, "Post number 10")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Reddit Posts Summary:")
}

func TestCreateDigestFailure(t *testing.T) {
	gen := &fakeGen{err: fmt.Errorf("quota exceeded")}
	s := newTestSummarizer(gen, nil)

	digest := s.CreateDigest(context.Background(), []model.Post{post("p1", "Hello")})
	assert.Contains(t, digest, "Error creating digest:")
	assert.Contains(t, digest, "quota exceeded")
}
