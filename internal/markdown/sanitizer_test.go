package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

func TestSanitizerValidateURL(t *testing.T) {
	s := NewSanitizer(nil)

	cases := []struct {
		url     string
		wantErr bool
	}{
		{url: ""},
		{url: "guides/install.md"},
		{url: "https://example.com"},
		{url: "MAILTO:docs@example.com"},
		{url: "javascript:alert(1)", wantErr: true},
		{url: "ftp://example.com/file", wantErr: true},
		{url: "http://[::1", wantErr: true},
	}
	for _, tc := range cases {
		if err := s.ValidateURL(tc.url); (err != nil) != tc.wantErr {
			t.Fatalf("ValidateURL(%q): expected error %v, got %v", tc.url, tc.wantErr, err)
		}
	}
}

func TestSanitizeDropsDisallowedLinks(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("[ok](https://example.com) [files](ftp://example.com/f) ![pic](ftp://example.com/p.png)\n")

	html, err := parser.ParseWithOptions(source, interfaces.ParseOptions{Sanitize: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `<a href="https://example.com">ok</a>`) {
		t.Fatalf("expected allowed link to remain, got %q", got)
	}
	if strings.Contains(got, "ftp://") {
		t.Fatalf("expected ftp links to be dropped, got %q", got)
	}
	if !strings.Contains(got, " files ") || !strings.Contains(got, "pic") {
		t.Fatalf("expected link text to be kept, got %q", got)
	}
}

func TestSanitizeAppliesToVariableContent(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})
	source := []byte("{{> link [click](ftp://example.com) }}\nSee {{ link }}.\n")

	html, err := parser.ParseWithOptions(source, interfaces.ParseOptions{Sanitize: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if string(html) != "<p>See click.</p>\n" {
		t.Fatalf("unexpected HTML: %q", string(html))
	}

	html, err = parser.ParseWithOptions(source, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if string(html) != "<p>See <a href=\"ftp://example.com\">click</a>.</p>\n" {
		t.Fatalf("unexpected HTML without sanitizing: %q", string(html))
	}
}
