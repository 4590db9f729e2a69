package social

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"MarketLens/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFetchPostsBareArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "expert1.json", `[
		{"username": "expert1", "text": "TSLA looks strong, buy", "created_at": "2024-06-01T10:00:00Z"},
		{"username": "expert1", "text": "AAPL weak", "created_at": "2024-06-01T11:00:00Z"}
	]`)
	r := New(dir, testLogger(t))
	got, err := r.FetchPosts(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 post, got %d", len(got))
	}
	if got[0].Author != "expert1" {
		t.Fatalf("unexpected author %q", got[0].Author)
	}
}

func TestFetchPostsWrappedObject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.json", `{"tweets": [
		{"user": "a", "full_text": "tsla rally incoming", "timestamp": "Tue Mar 05 14:30:00 +0000 2024"}
	]}`)
	r := New(dir, testLogger(t))
	got, err := r.FetchPosts(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 post, got %d", len(got))
	}
}

func TestFetchPostsDropsUnparsableTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `[
		{"text": "tsla to the moon", "created_at": "not a date"},
		{"text": "tsla dip", "created_at": "2024-06-01T10:00:00Z"}
	]`)
	r := New(dir, testLogger(t))
	got, err := r.FetchPosts(context.Background(), "tsla")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected unparsable post dropped, got %d", len(got))
	}
}

func TestFetchPostsSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{not json`)
	writeFile(t, dir, "good.json", `[{"text": "buy tsla", "created_at": "2024-06-01T10:00:00Z"}]`)
	r := New(dir, testLogger(t))
	got, err := r.FetchPosts(context.Background(), "tsla")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 post from the good file, got %d", len(got))
	}
}

func TestFetchPostsEmptyTickerReturnsAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed.json", `[
		{"text": "TSLA up", "created_at": "2024-06-01T10:00:00Z"},
		{"text": "macro view", "created_at": "2024-06-01T10:00:00Z"}
	]`)
	r := New(dir, testLogger(t))
	got, err := r.FetchPosts(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}
}
