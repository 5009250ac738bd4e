package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/goliatone/go-mdvars/cmd/mdvars/internal/bootstrap"
	"github.com/goliatone/go-mdvars/internal/runtimeconfig"
)

func init() {
	color.NoColor = true
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	exit := func(code int) {
		t.Fatalf("unexpected exit with code %d: %s", code, stderr.String())
	}
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr, exit)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRenderFromStdin(t *testing.T) {
	res := runCLI(t, "{{> name World }}\nHello {{ name }}!\n", "--quiet", "render")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if res.stdout != "<p>Hello World!</p>\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestRenderIsDefaultCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "---\ntitle: Doc\n---\n{{> unused text }}\n")

	res := runCLI(t, "", "--quiet", path)
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if res.stdout != "<p>{{&gt; unused text }}</p>\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestRenderJSONWithReport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "---\ntitle: Doc\n---\n{{> a **bold** }}\n{{> b spare }}\n{{ a }}\n")

	res := runCLI(t, "", "--quiet", "render", "--format", "json", "--report", path)
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}

	var out renderOutput
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("decode output %q: %v", res.stdout, err)
	}
	if !strings.Contains(out.HTML, "<p><strong>bold</strong></p>") {
		t.Fatalf("unexpected HTML: %q", out.HTML)
	}
	if out.FrontMatter["title"] != "Doc" {
		t.Fatalf("expected frontmatter title, got %#v", out.FrontMatter)
	}
	if len(out.Variables.Unreferenced) != 1 || out.Variables.Unreferenced[0] != "b" {
		t.Fatalf("unexpected variables: %#v", out.Variables)
	}
	if !strings.Contains(res.stderr, "unreferenced: b") {
		t.Fatalf("expected report on stderr, got %q", res.stderr)
	}
}

func TestRenderWithoutVariablesExtension(t *testing.T) {
	res := runCLI(t, "{{> a b }}\n{{ a }}\n", "--quiet", "--extensions", "table", "render")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if !strings.Contains(res.stdout, "{{ a }}") {
		t.Fatalf("expected variables to stay literal, got %q", res.stdout)
	}
}

func TestRenderLogsToStderr(t *testing.T) {
	res := runCLI(t, "{{> a one }}\n{{> a two }}\n", "--log-level", "debug", "render")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if !strings.Contains(res.stderr, "variables.definition.duplicate") {
		t.Fatalf("expected duplicate definition log, got %q", res.stderr)
	}
}

func TestRenderMissingFile(t *testing.T) {
	res := runCLI(t, "", "--quiet", "render", filepath.Join(t.TempDir(), "missing.md"))
	if res.err == nil || !strings.Contains(res.err.Error(), "missing.md") {
		t.Fatalf("expected read error, got %v", res.err)
	}
}

func TestGlobalsValidate(t *testing.T) {
	cases := []struct {
		name    string
		globals Globals
		wantErr bool
	}{
		{name: "defaults", globals: Globals{LogLevel: "warn"}},
		{name: "bad level", globals: Globals{LogLevel: "verbose"}, wantErr: true},
		{name: "bad format", globals: Globals{LogFormat: "xml"}, wantErr: true},
		{name: "negative priority", globals: Globals{DefinitionPriority: -1}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.globals.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestInvalidLogLevelIsRejected(t *testing.T) {
	res := runCLI(t, "", "--log-level", "verbose", "render")
	if res.err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "guides/intro.md", "---\ntitle: Intro\n---\n{{> tool mdvars }}\n\nUse {{ tool }}.\n")

	res := runCLI(t, "", "--quiet", "preview", "--content-dir", dir, "--file", "guides/intro.md")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}

	for _, want := range []string{
		"Path: guides/intro.md",
		"\"title\": \"Intro\"",
		"Rendered HTML:",
		"<p>Use mdvars.</p>",
		"defined:      tool",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("expected output to contain %q, got %q", want, res.stdout)
		}
	}
}

func TestPreviewRaw(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.md", "Plain {{ text }}\n")

	res := runCLI(t, "", "--quiet", "preview", "-d", dir, "--file", "page.md", "--raw")
	if res.err != nil {
		t.Fatalf("run: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Markdown Body:\nPlain {{ text }}") || !strings.Contains(res.stdout, "(none)") {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestPreviewUsesModuleBuilder(t *testing.T) {
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	var captured runtimeconfig.Config
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts.Config
		return nil, errors.New("builder failed")
	}

	res := runCLI(t, "", "--hard-wraps", "--definition-priority", "900", "preview", "-d", "content", "--file", "x.md")
	if res.err == nil || !strings.Contains(res.err.Error(), "builder failed") {
		t.Fatalf("expected builder error, got %v", res.err)
	}
	if captured.Markdown.ContentDir != "content" || !captured.Markdown.Parser.HardWraps {
		t.Fatalf("unexpected config: %#v", captured.Markdown)
	}
	if captured.Variables.DefinitionPriority != 900 || !captured.Features.Logger {
		t.Fatalf("unexpected config: %#v", captured)
	}
}
