package mdvars

import "github.com/goliatone/go-mdvars/internal/runtimeconfig"

var (
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrMarkdownExtensionUnknown   = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrVariablePriorityInvalid    = runtimeconfig.ErrVariablePriorityInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrLoggingFocusUnknown        = runtimeconfig.ErrLoggingFocusUnknown
)

type (
	Config               = runtimeconfig.Config
	Features             = runtimeconfig.Features
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	VariablesConfig      = runtimeconfig.VariablesConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
