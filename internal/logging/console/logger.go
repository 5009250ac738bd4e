package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

var levelColors = [...]color.Attribute{
	logging.LevelTrace: color.FgHiBlack,
	logging.LevelDebug: color.FgCyan,
	logging.LevelInfo:  color.FgGreen,
	logging.LevelWarn:  color.FgYellow,
	logging.LevelError: color.FgRed,
	logging.LevelFatal: color.FgMagenta,
}

// Options configures the console logger provider.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *logging.Level
	// Color renders level labels with ANSI colors. It is still subject to
	// color.NoColor, which is set when stdout is not a terminal.
	Color bool
}

type provider struct {
	writer   io.Writer
	clock    func() time.Time
	minLevel logging.Level
	color    bool
	mu       sync.Mutex
}

// NewProvider constructs a console-backed logger provider. Logs go to
// stderr at DEBUG and above unless Options say otherwise.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &provider{
		writer:   opts.Writer,
		clock:    opts.TimeFunc,
		minLevel: logging.LevelDebug,
		color:    opts.Color,
	}
	if p.writer == nil {
		p.writer = os.Stderr
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.minLevel = *opts.MinLevel
	}
	return p
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &consoleLogger{
		provider: p,
		fields:   map[string]any{"logger": name},
	}
}

func (p *provider) label(level logging.Level) string {
	name := strings.ToUpper(level.String())
	if !p.color || int(level) >= len(levelColors) {
		return name
	}
	return color.New(levelColors[level]).Sprint(name)
}

type consoleLogger struct {
	provider *provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*consoleLogger)(nil)
	_ interfaces.FieldsLogger = (*consoleLogger)(nil)
)

func (l *consoleLogger) Trace(msg string, args ...any) { l.log(logging.LevelTrace, msg, args...) }
func (l *consoleLogger) Debug(msg string, args ...any) { l.log(logging.LevelDebug, msg, args...) }
func (l *consoleLogger) Info(msg string, args ...any)  { l.log(logging.LevelInfo, msg, args...) }
func (l *consoleLogger) Warn(msg string, args ...any)  { l.log(logging.LevelWarn, msg, args...) }
func (l *consoleLogger) Error(msg string, args ...any) { l.log(logging.LevelError, msg, args...) }
func (l *consoleLogger) Fatal(msg string, args ...any) { l.log(logging.LevelFatal, msg, args...) }

func (l *consoleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &consoleLogger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *consoleLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &consoleLogger{provider: l.provider, fields: maps.Clone(l.fields), ctx: ctx}
}

func (l *consoleLogger) log(level logging.Level, msg string, args ...any) {
	if l.provider == nil || level < l.provider.minLevel {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	appendArgs(fields, args)

	line := appendEntry(nil, l.provider.clock().UTC(), l.provider.label(level), msg, fields)

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	_, _ = l.provider.writer.Write(line)
}

// appendArgs folds key/value pairs into fields. Values without a usable
// string key are stored positionally.
func appendArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			fields[fmt.Sprintf("field_%d", i/2)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprintf("field_%d", i/2)
		}
		fields[key] = args[i+1]
	}
}

// appendEntry writes one line: timestamp, level, message and the fields as
// key=value pairs sorted by key.
func appendEntry(dst []byte, ts time.Time, level, msg string, fields map[string]any) []byte {
	dst = ts.AppendFormat(dst, time.RFC3339Nano)
	dst = append(dst, ' ')
	dst = append(dst, level...)
	dst = append(dst, ' ')
	dst = append(dst, msg...)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		dst = append(dst, ' ')
		dst = append(dst, key...)
		dst = append(dst, '=')
		dst = appendValue(dst, fields[key])
	}
	return append(dst, '\n')
}

func appendValue(dst []byte, value any) []byte {
	var text string
	switch v := value.(type) {
	case nil:
		return append(dst, "<nil>"...)
	case time.Time:
		return v.UTC().AppendFormat(dst, time.RFC3339Nano)
	case string:
		text = v
	case []string:
		text = strings.Join(v, ",")
	case error:
		text = v.Error()
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprint(v)
	}
	if text == "" || strings.ContainsFunc(text, needsQuote) {
		return strconv.AppendQuote(dst, text)
	}
	return append(dst, text...)
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}
