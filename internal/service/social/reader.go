package social

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/logger"
	"MarketLens/pkg/util"
)

// Reader loads social posts from a directory of JSON export files. Files hold
// either a bare array of posts or an object wrapping the array under "tweets"
// or "posts". Posts with no text or an unparsable timestamp are dropped
// silently.
type Reader struct {
	dir string
	log *logger.Logger
}

var _ domsvc.PostSource = (*Reader)(nil)

func New(dir string, log *logger.Logger) *Reader {
	return &Reader{dir: dir, log: log}
}

type rawPost struct {
	Author   string `json:"author"`
	Username string `json:"username"`
	User     string `json:"user"`

	Text     string `json:"text"`
	FullText string `json:"full_text"`

	CreatedAt string `json:"created_at"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

type wrappedPosts struct {
	Tweets []rawPost `json:"tweets"`
	Posts  []rawPost `json:"posts"`
}

func (p rawPost) text() string {
	if p.Text != "" {
		return p.Text
	}
	return p.FullText
}

func (p rawPost) author() string {
	switch {
	case p.Author != "":
		return p.Author
	case p.Username != "":
		return p.Username
	default:
		return p.User
	}
}

func (p rawPost) timestamp() string {
	switch {
	case p.CreatedAt != "":
		return p.CreatedAt
	case p.Timestamp != "":
		return p.Timestamp
	default:
		return p.Date
	}
}

// FetchPosts returns every parsable post in the directory that mentions the
// ticker. An empty ticker returns all parsable posts.
func (r *Reader) FetchPosts(ctx context.Context, ticker string) ([]models.Post, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(ticker)
	var out []models.Post
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		posts, err := r.readFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			r.log.Warn("skipping unreadable posts file",
				logger.String("file", e.Name()),
				logger.Error(err))
			continue
		}
		for _, p := range posts {
			if needle != "" && !strings.Contains(strings.ToLower(p.Text), needle) {
				continue
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Reader) readFile(path string) ([]models.Post, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []rawPost
	if err := json.Unmarshal(b, &raws); err != nil {
		var wrapped wrappedPosts
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
		raws = wrapped.Tweets
		if len(raws) == 0 {
			raws = wrapped.Posts
		}
	}

	posts := make([]models.Post, 0, len(raws))
	for _, rp := range raws {
		text := rp.text()
		if text == "" {
			continue
		}
		ts, ok := util.ParsePostTime(rp.timestamp())
		if !ok {
			continue
		}
		posts = append(posts, models.Post{Author: rp.author(), Text: text, CreatedAt: ts})
	}
	return posts, nil
}
