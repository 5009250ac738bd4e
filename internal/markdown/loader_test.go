package markdown

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

func TestDiscoveryAccepts(t *testing.T) {
	cases := []struct {
		pattern string
		name    string
		want    bool
	}{
		{pattern: "*.md", name: "index.md", want: true},
		{pattern: "*.md", name: "guides/install.md", want: true},
		{pattern: "*.md", name: "notes.txt", want: false},
		{pattern: "guides/*.md", name: "guides/install.md", want: true},
		{pattern: "guides/*.md", name: "guides/advanced/tuning.md", want: false},
		{pattern: "**/*.md", name: "guides/advanced/tuning.md", want: true},
		{pattern: "[", name: "index.md", want: false},
	}

	for _, tc := range cases {
		d := discovery{pattern: tc.pattern}
		if got := d.accepts(tc.name); got != tc.want {
			t.Fatalf("accepts(%q, %q) = %v, want %v", tc.pattern, tc.name, got, tc.want)
		}
	}
}

func TestDiscoveryWith(t *testing.T) {
	base := discovery{pattern: "*.md", recursive: true}
	no := false

	got := base.with(interfaces.LoadOptions{Pattern: " *.txt ", Recursive: &no})
	if got.pattern != "*.txt" || got.recursive {
		t.Fatalf("expected overrides to apply, got %+v", got)
	}
	if same := base.with(interfaces.LoadOptions{}); same != base {
		t.Fatalf("expected empty options to keep %+v, got %+v", base, same)
	}
}

func TestContentRootResolve(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "srv", "content")
	root := newContentRoot(fstest.MapFS{}, Config{BasePath: base})

	cases := []struct {
		name    string
		want    string
		wantErr string
	}{
		{name: "", want: "."},
		{name: "guides/install.md", want: "guides/install.md"},
		{name: "./guides/../index.md", want: "index.md"},
		{name: filepath.Join(base, "guides", "install.md"), want: "guides/install.md"},
		{name: "../secrets.md", wantErr: "outside the content root"},
		{name: filepath.Join(string(filepath.Separator), "etc", "passwd"), wantErr: "outside the content root"},
	}

	for _, tc := range cases {
		got, err := root.resolve(tc.name)
		if tc.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("resolve(%q): expected error containing %q, got %v", tc.name, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("resolve(%q): %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("resolve(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}

	noBase := newContentRoot(fstest.MapFS{}, Config{})
	if _, err := noBase.resolve(base); err == nil || !strings.Contains(err.Error(), "needs a base path") {
		t.Fatalf("expected base path error, got %v", err)
	}
}

func TestContentRootOpen(t *testing.T) {
	files := fstest.MapFS{
		"post.md": {Data: []byte("---\ntitle: Post\n---\n{{> who world }}\nhello {{ who }}\n")},
	}
	root := newContentRoot(files, Config{})

	doc, err := root.open(context.Background(), "post.md")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if doc.FrontMatter.Title != "Post" || len(doc.Checksum) != 32 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.BodyHTML != nil {
		t.Fatalf("expected body to stay unrendered, got %q", doc.BodyHTML)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := root.walk(ctx, ".", root.scan); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
