package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-mdvars/internal/logging/gologger"
	"github.com/goliatone/go-mdvars/internal/runtimeconfig"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

func TestBuildModuleRendersVariables(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = t.TempDir()

	module, err := BuildModule(Options{Config: cfg})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if module.Provider != nil {
		t.Fatalf("expected no provider when logger feature is disabled")
	}

	html, err := module.Service.Render(context.Background(), []byte("{{> who you }}\nThank {{ who }}.\n"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(html) != "<p>Thank you.</p>\n" {
		t.Fatalf("unexpected HTML: %q", string(html))
	}
}

func TestBuildModuleRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	_, err := BuildModule(Options{Config: cfg})
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestBuildModuleLogsDuplicateDefinitions(t *testing.T) {
	var buf bytes.Buffer
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = t.TempDir()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"

	module, err := BuildModule(Options{Config: cfg, LogWriter: &buf})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}

	source := []byte("{{> a one }}\n{{> a two }}\n{{ a }}\n")
	if _, err := module.Service.Render(context.Background(), source, interfaces.ParseOptions{}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "variables.definition.duplicate") || !strings.Contains(out, "module=mdvars.variables") {
		t.Fatalf("expected duplicate definition to be logged, got %q", out)
	}
}

func TestBuildLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	provider, err := BuildLoggerProvider(cfg, nil, false)
	if err != nil {
		t.Fatalf("BuildLoggerProvider: %v", err)
	}
	if _, ok := provider.(*gologger.Provider); !ok {
		t.Fatalf("expected gologger provider, got %T", provider)
	}

	cfg.Logging.Provider = "console"
	var buf bytes.Buffer
	provider, err = BuildLoggerProvider(cfg, &buf, false)
	if err != nil {
		t.Fatalf("BuildLoggerProvider: %v", err)
	}
	provider.GetLogger("mdvars.cli").Debug("dropped")
	provider.GetLogger("mdvars.cli").Info("kept")
	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("expected info level filtering, got %q", out)
	}
}
