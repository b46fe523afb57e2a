// Package store persists post collections and digests as flat files under a
// data directory. Post files are JSON arrays, digests are markdown.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rcliao/reddit-digest/internal/model"
)

const timestampLayout = "20060102_150405"

// Storage reads and writes files in a single data directory.
type Storage struct {
	logger *slog.Logger
	dir    string
}

// FileList partitions saved filenames by type, each sorted descending so the
// timestamped naming convention yields most-recent-first.
type FileList struct {
	JSON     []string `json:"json"`
	Markdown []string `json:"md"`
}

// Info describes a saved file. PostCount and Subreddits are set for post
// files only.
type Info struct {
	Filename   string   `json:"filename"`
	Path       string   `json:"filepath"`
	SizeBytes  int64    `json:"size_bytes"`
	SizeMB     float64  `json:"size_mb"`
	Created    string   `json:"created"`
	Modified   string   `json:"modified"`
	PostCount  *int     `json:"post_count,omitempty"`
	Subreddits []string `json:"subreddits,omitempty"`
}

// New creates a Storage rooted at dir.
func New(logger *slog.Logger, dir string) *Storage {
	return &Storage{logger: logger, dir: dir}
}

// Dir returns the data directory path.
func (s *Storage) Dir() string { return s.dir }

// EnsureDir creates the data directory if it does not exist.
func (s *Storage) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// SavePosts writes posts as an indented JSON array and returns the written
// path. An empty filename picks a timestamped default.
func (s *Storage) SavePosts(posts []model.Post, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("reddit_posts_%s.json", time.Now().Format(timestampLayout))
	}
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(posts); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("saved posts", "count", len(posts), "path", path)
	return path, nil
}

// LoadPosts parses a JSON array of posts from a file in the data directory.
func (s *Storage) LoadPosts(filename string) ([]model.Post, error) {
	path := filepath.Join(s.dir, filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var posts []model.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return posts, nil
}

// SaveDigest writes a digest as raw text and returns the written path. An
// empty filename picks a timestamped default.
func (s *Storage) SaveDigest(digest, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("reddit_digest_%s.md", time.Now().Format(timestampLayout))
	}
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, []byte(digest), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("saved digest", "path", path)
	return path, nil
}

// ListFiles returns saved post and digest filenames, newest first.
func (s *Storage) ListFiles() (FileList, error) {
	list := FileList{JSON: []string{}, Markdown: []string{}}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return list, nil
	}
	if err != nil {
		return list, fmt.Errorf("read %s: %w", s.dir, err)
	}

	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".json"):
			list.JSON = append(list.JSON, e.Name())
		case strings.HasSuffix(e.Name(), ".md"):
			list.Markdown = append(list.Markdown, e.Name())
		}
	}
	slices.Sort(list.JSON)
	slices.Reverse(list.JSON)
	slices.Sort(list.Markdown)
	slices.Reverse(list.Markdown)
	return list, nil
}

// Delete removes a file from the data directory, reporting success.
func (s *Storage) Delete(filename string) bool {
	path := filepath.Join(s.dir, filename)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("file not found", "path", path)
		} else {
			s.logger.Error("failed to delete file", "path", path, "error", err)
		}
		return false
	}
	s.logger.Info("deleted file", "path", path)
	return true
}

// FileInfo stats a saved file. It returns (nil, nil) when the file does not
// exist. For post files the content is loaded to report post count and the
// distinct subreddits.
func (s *Storage) FileInfo(filename string) (*Info, error) {
	path := filepath.Join(s.dir, filename)
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// True creation time is not portable; mtime stands in for both.
	mod := fi.ModTime().Format("2006-01-02 15:04:05")
	info := &Info{
		Filename:  filename,
		Path:      path,
		SizeBytes: fi.Size(),
		SizeMB:    roundMB(fi.Size()),
		Created:   mod,
		Modified:  mod,
	}

	if strings.HasSuffix(filename, ".json") {
		posts, err := s.LoadPosts(filename)
		if err != nil {
			return nil, err
		}
		count := len(posts)
		info.PostCount = &count

		seen := map[string]bool{}
		for _, p := range posts {
			if !seen[p.Subreddit] {
				seen[p.Subreddit] = true
				info.Subreddits = append(info.Subreddits, p.Subreddit)
			}
		}
	}

	return info, nil
}

func roundMB(size int64) float64 {
	mb := float64(size) / (1024 * 1024)
	return float64(int(mb*100+0.5)) / 100
}
