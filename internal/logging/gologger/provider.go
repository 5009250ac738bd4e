package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level  string
	Format string
	// AddSource records the calling file and line.
	AddSource bool
	// Focus limits output to the named loggers, e.g. "mdvars.variables".
	Focus []string
}

var glogLevels = [...]string{
	logging.LevelTrace: glog.Trace,
	logging.LevelDebug: glog.Debug,
	logging.LevelInfo:  glog.Info,
	logging.LevelWarn:  glog.Warn,
	logging.LevelError: glog.Error,
	logging.LevelFatal: glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

// SupportedFormat reports whether format names a go-logger output type.
// The empty string selects json.
func SupportedFormat(format string) bool {
	_, ok := formatOption(format)
	return ok
}

func formatOption(format string) (glog.Option, bool) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "json"
	}
	build, ok := formats[format]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Provider hands out go-logger child loggers behind interfaces.Logger.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root go-logger from cfg. Unknown levels fall back
// to go-logger's default; unknown formats are an error.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formatOption(cfg.Format)
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options := []glog.Option{format}

	if level, ok := logging.ParseLevel(cfg.Level); ok && strings.TrimSpace(cfg.Level) != "" {
		options = append(options, glog.WithLevel(glogLevels[level]))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	focus := slices.DeleteFunc(slices.Clone(cfg.Focus), func(name string) bool {
		return strings.TrimSpace(name) == ""
	})
	for i := range focus {
		focus[i] = strings.TrimSpace(focus[i])
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for name; a blank name yields the root.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return adapt(p.root.GetLogger(name))
	}
	return adapt(p.root)
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

// WithFields scopes fields when the wrapped logger is a glog.FieldsLogger
// and returns the receiver otherwise.
func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	scoped, ok := a.inner.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return a
	}
	return adapt(scoped.WithFields(maps.Clone(fields)))
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return adapt(a.inner.WithContext(ctx))
}
