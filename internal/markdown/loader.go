package markdown

import (
	"cmp"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

const defaultPattern = "*.md"

// contentRoot reads documents out of an fs.FS. Names handed to it are either
// fs.FS paths or absolute paths below base.
type contentRoot struct {
	files fs.FS
	base  string
	scan  discovery
}

// discovery selects which files a directory walk picks up.
type discovery struct {
	pattern   string
	recursive bool
}

func newContentRoot(files fs.FS, cfg Config) *contentRoot {
	root := &contentRoot{
		files: files,
		scan:  discovery{pattern: defaultPattern, recursive: cfg.Recursive},
	}
	if p := strings.TrimSpace(cfg.Pattern); p != "" {
		root.scan.pattern = p
	}
	if strings.TrimSpace(cfg.BasePath) != "" {
		root.base = filepath.Clean(cfg.BasePath)
	}
	return root
}

// with applies per-call overrides from opts.
func (d discovery) with(opts interfaces.LoadOptions) discovery {
	if p := strings.TrimSpace(opts.Pattern); p != "" {
		d.pattern = p
	}
	if opts.Recursive != nil {
		d.recursive = *opts.Recursive
	}
	return d
}

// accepts matches a slash-free pattern against the file name and any other
// pattern against the whole path. "**/" is treated as "any directory".
func (d discovery) accepts(name string) bool {
	pattern := strings.ReplaceAll(filepath.ToSlash(d.pattern), "**/", "")
	subject := path.Base(name)
	if strings.ContainsRune(pattern, '/') {
		subject = name
	}
	ok, err := path.Match(pattern, subject)
	return ok && err == nil
}

// open reads name and splits it into frontmatter and body. The body is not
// rendered.
func (r *contentRoot) open(ctx context.Context, name string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := r.resolve(name)
	if err != nil {
		return nil, err
	}

	raw, err := fs.ReadFile(r.files, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", rel, err)
	}
	stat, err := fs.Stat(r.files, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, raw, stat.ModTime())
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", rel, err)
	}
	digest := sha256.Sum256(raw)
	doc.Checksum = digest[:]
	return doc, nil
}

// walk opens every file under dir accepted by scan, ordered by path.
func (r *contentRoot) walk(ctx context.Context, dir string, scan discovery) ([]*interfaces.Document, error) {
	start, err := r.resolve(dir)
	if err != nil {
		return nil, err
	}

	var docs []*interfaces.Document
	err = fs.WalkDir(r.files, start, func(name string, entry fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		case entry.IsDir():
			if name != start && !scan.recursive {
				return fs.SkipDir
			}
			return nil
		case !scan.accepts(name):
			return nil
		}

		doc, err := r.open(ctx, name)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b *interfaces.Document) int {
		return cmp.Compare(a.FilePath, b.FilePath)
	})
	return docs, nil
}

// resolve turns name into a valid fs.FS path. Blank names mean the root.
func (r *contentRoot) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return ".", nil
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) {
		if r.base == "" {
			return "", fmt.Errorf("markdown: absolute path %s needs a base path", name)
		}
		inside, err := filepath.Rel(r.base, cleaned)
		if err != nil {
			return "", fmt.Errorf("markdown: resolve %s: %w", name, err)
		}
		cleaned = inside
	}
	if slashed := filepath.ToSlash(cleaned); fs.ValidPath(slashed) {
		return slashed, nil
	}
	return "", fmt.Errorf("markdown: path %s is outside the content root", name)
}
