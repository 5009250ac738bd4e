package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ParseFrontMatter splits source into its metadata block and the markdown
// body. Known keys fill the typed fields, everything else lands in Custom;
// Raw keeps every key. Without a metadata block the body is source itself.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	raw := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm := interfaces.FrontMatter{
		Custom: map[string]any{},
		Raw:    make(map[string]any, len(raw)),
	}
	for key, value := range raw {
		value = plainValue(value)
		fm.Raw[key] = value

		switch key {
		case "title":
			fm.Title = metaString(value)
		case "slug":
			fm.Slug = metaString(value)
		case "summary":
			fm.Summary = metaString(value)
		case "author":
			fm.Author = metaString(value)
		case "tags":
			fm.Tags = metaStrings(value)
		case "date":
			fm.Date = metaDate(value)
		case "draft":
			fm.Draft, _ = value.(bool)
		default:
			fm.Custom[key] = value
		}
	}
	return fm, body, nil
}

// BuildDocument assembles an unrendered Document; BodyHTML and Variables are
// filled by the service.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	doc := &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}
	return doc, nil
}

// plainValue rewrites YAML's map[any]any nodes into map[string]any so the
// metadata can be encoded as JSON.
func plainValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = plainValue(item)
		}
		return out
	case map[string]any:
		out := maps.Clone(v)
		for key, item := range out {
			out[key] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plainValue(item)
		}
		return out
	default:
		return value
	}
}

func metaString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func metaStrings(value any) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(metaString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

func metaDate(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
