package logging

import (
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// Logger namespaces handed to providers. Each is also attached to entries
// as the "module" field.
const (
	ModuleRoot      = "mdvars"
	ModuleMarkdown  = "mdvars.markdown"
	ModuleVariables = "mdvars.variables"
	ModuleCLI       = "mdvars.cli"
)

const (
	FieldModule   = "module"
	FieldDocument = "document"
	FieldAction   = "action"
)

var modules = []string{ModuleRoot, ModuleMarkdown, ModuleVariables, ModuleCLI}

// Modules lists the known logger namespaces.
func Modules() []string {
	return slices.Clone(modules)
}

// KnownModule reports whether name is one of Modules.
func KnownModule(name string) bool {
	return slices.Contains(modules, strings.TrimSpace(name))
}

// ModuleLogger asks provider for the logger of module and tags it with the
// module name. A nil provider yields NoOp; an empty module means ModuleRoot.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module = strings.TrimSpace(module); module == "" {
		module = ModuleRoot
	}

	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	return WithFields(OrNoOp(logger), map[string]any{FieldModule: module})
}

func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleMarkdown)
}

func VariablesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleVariables)
}

func CLILogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleCLI)
}

// WithDocument scopes logger to one document and the action performed on
// it. Blank values are skipped.
func WithDocument(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := make(map[string]any, 2)
	for key, value := range map[string]string{FieldDocument: path, FieldAction: action} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger    { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
